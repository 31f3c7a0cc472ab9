package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shuttleboard/config"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor.",
	Long: `Open the active shuttleboard config file in your editor.

Editor selection order: $VISUAL, then $EDITOR, then vi.

A missing config file is created from the example template first. After the
editor exits the file is validated; an invalid source.url or empty
columns.time is reported with the file path.`,
	Example: `
  # Edit active config
  shuttleboard config edit

  # Edit with a specific editor
  EDITOR="code --wait" shuttleboard config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		created, err := ensureConfigFileWithTemplate(configPath)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(out, "Created example config at: %s\n", configPath)
		}

		editor, err := editorCommand(os.Getenv("VISUAL"), os.Getenv("EDITOR"), configPath)
		if err != nil {
			return err
		}
		cfg, err := editAndValidate(editor, configPath)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Configuration saved: %s (sheet: %s)\n", configPath, cfg.Source.URL)
		return nil
	},
}

// editAndValidate runs the editor to completion and validates what it left
// behind at configPath.
func editAndValidate(editor *exec.Cmd, configPath string) (*config.Config, error) {
	editor.Stdin = os.Stdin
	editor.Stdout = os.Stdout
	editor.Stderr = os.Stderr
	if err := editor.Run(); err != nil {
		return nil, fmt.Errorf("run editor: %w", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read edited config: %w", err)
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		return nil, fmt.Errorf("config %s is invalid: %w", configPath, err)
	}
	cliLog.Debug().Str("path", configPath).Msg("edited config validated")
	return cfg, nil
}

func resolveConfigEditPath(configFileFlag, configFileUsed string) (string, error) {
	if strings.TrimSpace(configFileFlag) != "" {
		return configFileFlag, nil
	}
	if strings.TrimSpace(configFileUsed) != "" {
		return configFileUsed, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".shuttleboard.yaml"), nil
}

func ensureConfigFileWithTemplate(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
		return false, fmt.Errorf("write example config: %w", err)
	}

	return true, nil
}

// editorCommand picks $VISUAL, then $EDITOR, then vi. Editor values may carry
// arguments ("code --wait"); the config path is appended last.
func editorCommand(visual, editor, configPath string) (*exec.Cmd, error) {
	fields := strings.Fields(visual)
	if len(fields) == 0 {
		fields = strings.Fields(editor)
	}
	if len(fields) == 0 {
		fields = []string{"vi"}
	}
	if configPath == "" {
		return nil, errors.New("config path is empty")
	}

	args := append(fields[1:len(fields):len(fields)], configPath)
	return exec.Command(fields[0], args...), nil
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
