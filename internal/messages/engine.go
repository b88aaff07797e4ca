package messages

// Error texts for the version, config, and command layers. Sentinel
// errors in their owning packages wrap these so callers can classify
// with errors.Is while users see stable wording.
const (
	InvalidVersion      = "invalid version format"
	InvalidBumpTypeFmt  = "invalid bump type %q (expected patch, minor, or major)"
	VersionFileNotFound = "version file not found"
	ConfigNotFound      = "config not found"
	ConfigInvalidFmt    = "invalid config %s: %v"
	ConfigInvalidKeyFmt = "invalid %q value in config: %v"
	ConfigBadChangelog  = "changelog must be a boolean or an object"
	SubdirNotFound      = "subdirectory not found"
	MissingArgument     = "missing required argument"
	CommandFailed       = "command failed"

	UpdatesUnknownRuleFmt = "unknown update rule %q (expected \"file\" or a list of prefixes)"
	UpdatesInvalidRule    = "update rule must be \"file\" or a list of prefixes"

	SinceRequired  = "--since is required for bump-all"
	BeforeRequired = "push event has no before ref"

	CheckNoPatterns = "no 'files' patterns configured"
)

// Progress and notice texts printed during bumps. Missing optional
// files are notices by contract, never errors.
const (
	UpdatesFileMissingFmt = "File %s not found, skipping\n"
	ChangelogMissingFmt   = "Changelog %s not found, skipping changelog update\n"
	ChangelogNoNotable    = "No notable changes"

	BaselineAdjustedFmt = "Tag %s is ahead of version file (%s), using as baseline\n"

	CheckMatchedHeader  = "Matched files:\n"
	MatchEvidenceFmt    = "  %s (pattern: %s)\n"
	CheckNoMatch        = "No matching files\n"
	CheckNoChanges      = "No files changed\n"
	RootComponentName   = "Root"
	BumpedFmt           = "Bumped %s: %s -> %s\n"
	ComponentMatchedFmt = "%s matched:\n"

	CommitSubjectSingleFmt = "chore: bump version to %s"
	CommitSubjectMultiFmt  = "chore: bump version %s"
	CommittedFmt           = "Committed: %s\n"
	TaggedFmt              = "Tagged: %s\n"
	TaggedLatestFmt        = "Tagged: %s + latest\n"
	PushedNotice           = "Changes pushed\n"
	NoPushNotice           = "Committed and tagged, no push\n"
	NoCommitNotice         = "Updated files only, no commit\n"

	NoFilesChangedSinceFmt = "No files changed since %s\n"
	NoComponentsTriggered  = "No components triggered\n"
)
