package messages

// CLI messages for the git-semver command surface.
const (
	// RootUse is the CLI command name.
	RootUse = "git-semver"
	// RootShort is the short description for the root command.
	RootShort      = "Versioning and release automation for multi-component repositories"
	RootFlagConfig = "Path to the config file (overrides vendored and default locations)"

	VersionUse   = "version"
	VersionShort = "Print the current version of a component"

	CheckUse   = "check"
	CheckShort = "Check whether tracked patterns changed since a commit"

	BumpUse   = "bump [patch|minor|major]"
	BumpShort = "Bump one component and record the release"

	BumpAllUse   = "bump-all [patch|minor|major]"
	BumpAllShort = "Bump every component touched since a commit"

	FlagSubdir      = "Operate on the named subdirectory component instead of the root"
	FlagSince       = "Commit ref that starts the changed-file range"
	FlagNoPush      = "Commit and tag without pushing"
	FlagNoCommit    = "Update files without committing"
	FlagDescription = "Changelog entry text overriding the commit list"

	// ErrorFmt renders fatal errors on stderr.
	ErrorFmt = "error: %v"
)
