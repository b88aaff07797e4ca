package messages

// Release orchestrator messages for the bump-and-release entry point.
const (
	ReleaseSkipOnMerge     = "install.on_merge is false; skipping version bump\n"
	ReleaseUnknownEventFmt = "unsupported event %q (expected push or workflow_dispatch)"
	WarnPullFailed         = "Warning: fast-forward pull failed; continuing with current HEAD\n"
	ReleaseCreatingFmt     = "Creating release for %s\n"
	ReleaseNoTagAtHead     = "No release tag at HEAD; skipping release\n"
	ReleaseNoChanges       = "No version changes; skipping pull request\n"
	ReleasePROpenedFmt     = "Opened pull request from %s\n"
	ReleasePRBodyFmt       = "Automated version bump: %s."
	ReleaseNotesFmt        = "Release %s"

	ReleaseBranchPrefix = "version-bump/"
	ReleaseUnknownTag   = "unknown"

	GitUserName  = "github-actions[bot]"
	GitUserEmail = "github-actions[bot]@users.noreply.github.com"
)
