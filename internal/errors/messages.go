package errors

import "fmt"

// MissingRequiredFlag reports a required path flag that was not given.
func MissingRequiredFlag(flag string) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  fmt.Sprintf("required flag --%s not set", flag),
		Usage:    "adyprocessor --input <file.ady> --output <file.ady> [flags]",
		Remediation: []string{
			fmt.Sprintf("Pass --%s with a file path", flag),
			"Run 'adyprocessor --help' for all flags",
		},
	}
}

// InvalidFlagValue reports a flag value outside its allowed set.
func InvalidFlagValue(flag, value string, allowed ...string) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  fmt.Sprintf("invalid value %q for --%s", value, flag),
		Remediation: []string{
			fmt.Sprintf("Use one of: %v", allowed),
		},
	}
}

// InputNotFound reports a measurement file that does not exist.
func InputNotFound(path string) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("input file not found: %s", path),
		Remediation: []string{
			"Check the --input path",
			"Export the measurement from the calibration app first",
		},
	}
}

// InputUnreadable reports a measurement file that cannot be read or is not JSON.
func InputUnreadable(path string, err error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("cannot read input file %s: %v", path, err),
		Remediation: []string{
			"Make sure the file is a measurement (.ady) file saved as JSON",
			"Check the file permissions",
		},
		Err: err,
	}
}

// InvalidDocument reports a measurement file missing required fields.
func InvalidDocument(path string, err error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("%s: %v", path, err),
		Remediation: []string{
			"Every measurement needs a detectedChannels list",
			"Every channel record needs a string commandId",
		},
		Err: err,
	}
}

// OutputNotWritable reports an output file that could not be written.
func OutputNotWritable(path string, err error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  fmt.Sprintf("cannot write output file %s: %v", path, err),
		Remediation: []string{
			"Check that the output directory is writable",
			"Check available disk space",
		},
		Err: err,
	}
}

// ConfigParseError reports a settings file that failed to load.
func ConfigParseError(path string, err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("failed to load config %s: %v", path, err),
		Remediation: []string{
			"Check the file is valid YAML or JSON",
			"Remove the file to fall back to the defaults",
		},
		Err: err,
	}
}

// OverridesParseError reports an overrides file that failed to load or validate.
func OverridesParseError(path string, err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("failed to load overrides %s: %v", path, err),
		Remediation: []string{
			"Run 'adyprocessor channels --export yaml' for a valid example",
			"Crossover and correction limit must be positive",
		},
		Err: err,
	}
}
