package filemap

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Build file manifests from small mapping scripts"
	MsgRunShort        = "Run scripts and print the manifest"
	MsgShellShort      = "Read commands interactively"
	MsgStageShort      = "Copy a script's manifest into a directory"
	MsgCollectShort    = "Write the script that packages a directory"
	MsgSyntaxShort     = "Show the script language reference"
	MsgConfigShort     = "Show the effective configuration"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice     = "DRY RUN MODE - No changes were made"
	MsgNoSteps          = "Nothing to stage."
	MsgStepsFormat      = "Staged %d entries into %s:\n"
	MsgStepItem         = "  %s\n"
	MsgShellPrompt      = "(filemap) "
	MsgShellError       = "error: %v\n"
	MsgKeepGoingSummary = "%d line(s) failed"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrOpenScript = "failed to open script %s"
	MsgErrRunScript  = "%s: %w"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Use this config file instead of the user config"
	MsgFlagReplace   = "Repoint existing destinations instead of failing on duplicates"
	MsgFlagFormat    = "Output format: auto, term, text, json, yaml, toml or xml"
	MsgFlagCwd       = "Directory the script starts in"
	MsgFlagKeepGoing = "Log failing lines and continue"
	MsgFlagDryRun    = "Preview staging without writing anything"
	MsgFlagRecurse   = "Descend into subdirectories"
	MsgFlagEmpties   = "Keep directories, including empty ones"
	MsgFlagExclude   = "Glob to leave out (repeatable)"
	MsgFlagRun       = "Run the script and print the manifest"
	MsgFlagTemplate  = "Print a commented config file instead"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/shell-long.txt
	msgShellLongRaw string
	MsgShellLong    = strings.TrimSpace(msgShellLongRaw)

	//go:embed msgs/stage-long.txt
	msgStageLongRaw string
	MsgStageLong    = strings.TrimSpace(msgStageLongRaw)

	//go:embed msgs/collect-long.txt
	msgCollectLongRaw string
	MsgCollectLong    = strings.TrimSpace(msgCollectLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
