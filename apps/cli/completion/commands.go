package completion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install-autocomplete command
func NewInstallCmd(rootCmd *cobra.Command) *cobra.Command {
	var shellFlag string

	cmd := &cobra.Command{
		Use:   "install-autocomplete",
		Short: "Install shell completion for " + binaryName,
		Long: `Install shell completion for the ` + binaryName + ` CLI.

Detects your shell from $SHELL unless --shell is given. Completes flags
(--quality, --png-threshold, --exiftool, --verbose) and file paths.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}
			return install(rootCmd, cmd.OutOrStdout(), shellFlag, home)
		},
	}

	cmd.Flags().StringVarP(&shellFlag, "shell", "s", "", "Shell to install completion for (bash, zsh, fish, powershell). Auto-detected if not specified.")

	return cmd
}

// NewUninstallCmd creates the uninstall-autocomplete command
func NewUninstallCmd() *cobra.Command {
	var shellFlag string

	cmd := &cobra.Command{
		Use:   "uninstall-autocomplete",
		Short: "Uninstall shell completion for " + binaryName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}
			return uninstall(cmd.OutOrStdout(), shellFlag, home)
		},
	}

	cmd.Flags().StringVarP(&shellFlag, "shell", "s", "", "Shell to uninstall completion from (bash, zsh, fish, powershell). Auto-detected if not specified.")

	return cmd
}

func install(rootCmd *cobra.Command, out io.Writer, shellFlag, home string) error {
	shell, err := resolveShell(shellFlag)
	if err != nil {
		return err
	}
	path, err := InstallPath(shell, home)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create completion directory: %w", err)
	}
	if err := writeScript(rootCmd, shell, path); err != nil {
		return err
	}

	if shell == Bash {
		if err := addSourceLine(filepath.Join(home, ".bash_completion"), path); err != nil {
			fmt.Fprintf(out, "Warning: could not enable auto-load: %v\n", err)
		}
	}

	fmt.Fprintf(out, "Shell completion installed for %s at %s\n", shell, path)
	if shell == Zsh {
		fmt.Fprintf(out, "Ensure ~/.zshrc contains:\n  fpath=(%s $fpath)\n  autoload -Uz compinit && compinit\n", filepath.Dir(path))
	}
	return nil
}

func uninstall(out io.Writer, shellFlag, home string) error {
	shell, err := resolveShell(shellFlag)
	if err != nil {
		return err
	}
	path, err := InstallPath(shell, home)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("completion not installed for %s (expected at %s)", shell, path)
	}

	if shell == Bash {
		if err := removeSourceLine(filepath.Join(home, ".bash_completion"), path); err != nil {
			fmt.Fprintf(out, "Warning: could not disable auto-load: %v\n", err)
		}
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove completion file: %w", err)
	}

	fmt.Fprintf(out, "Shell completion uninstalled for %s, removed %s\n", shell, path)
	return nil
}

func writeScript(rootCmd *cobra.Command, shell Shell, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create completion file: %w", err)
	}
	defer file.Close()

	switch shell {
	case Bash:
		return rootCmd.GenBashCompletionV2(file, true)
	case Zsh:
		return rootCmd.GenZshCompletion(file)
	case Fish:
		return rootCmd.GenFishCompletion(file, true)
	case Powershell:
		return rootCmd.GenPowerShellCompletionWithDesc(file)
	default:
		return fmt.Errorf("unsupported shell: %s", shell)
	}
}

// addSourceLine appends "source <path>" to rcFile unless a line already mentions path.
func addSourceLine(rcFile, path string) error {
	content, _ := os.ReadFile(rcFile)
	for _, line := range strings.Split(string(content), "\n") {
		if strings.Contains(line, path) {
			return nil
		}
	}

	f, err := os.OpenFile(rcFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	prefix := ""
	if len(content) > 0 && content[len(content)-1] != '\n' {
		prefix = "\n"
	}
	_, err = fmt.Fprintf(f, "%ssource %s\n", prefix, path)
	return err
}

// removeSourceLine drops every line of rcFile that mentions path.
func removeSourceLine(rcFile, path string) error {
	content, err := os.ReadFile(rcFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var kept []string
	for _, line := range strings.Split(string(content), "\n") {
		if !strings.Contains(line, path) {
			kept = append(kept, line)
		}
	}
	return os.WriteFile(rcFile, []byte(strings.Join(kept, "\n")), 0644)
}
