package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"payarakit/internal/credential"
	"payarakit/internal/tui"
)

func newPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Manage the stored Payara Server admin password",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Encrypt and store the admin password",
		Args:  cobra.NoArgs,
		RunE:  runPasswordSet,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored admin password",
		Args:  cobra.NoArgs,
		RunE:  runPasswordClear,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether a password is stored and which key protects it",
		Args:  cobra.NoArgs,
		RunE:  runPasswordStatus,
	})
	return cmd
}

func runPasswordSet(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("password must not be empty")
	}

	store, closer, err := s.credentials()
	if err != nil {
		return err
	}
	defer closer.Close()

	store.Save(password)
	if got, ok := store.Load(); !ok || got != password {
		return fmt.Errorf("admin password was not stored; see %s", s.paths.LogsDir)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Admin password stored")
	return nil
}

// readPassword prompts without echo on a terminal and otherwise reads the
// first line of stdin.
func readPassword(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && tui.IsTerminal(f) {
		fmt.Fprint(cmd.ErrOrStderr(), "Admin password: ")
		data, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password from stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func runPasswordClear(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	store, closer, err := s.credentials()
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Admin password cleared")
	return nil
}

type passwordStatus struct {
	Stored  bool   `json:"stored"`
	Backend string `json:"backend"`
	KeyFile string `json:"key_file"`
	Key     string `json:"key"` // "custom" or "default"
}

func runPasswordStatus(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	store, closer, err := s.credentials()
	if err != nil {
		return err
	}
	defer closer.Close()

	keyPath, err := keyFilePath()
	if err != nil {
		return err
	}
	_, stored := store.Load()
	st := passwordStatus{
		Stored:  stored,
		Backend: s.cfg.Credentials.Backend,
		KeyFile: keyPath,
		Key:     keyKind(keyPath),
	}

	if outputJSON {
		return writeJSON(cmd, st)
	}
	state := "missing"
	if st.Stored {
		state = "stored"
	}
	table := newTable(cmd.OutOrStdout())
	table.AppendBulk([][]string{
		{"password", tui.StatusStyle(state).Render(state)},
		{"backend", st.Backend},
		{"key file", st.KeyFile},
		{"key", st.Key},
	})
	table.Render()
	return nil
}

// keyKind reports whether keyPath holds a usable 16 byte key.
func keyKind(keyPath string) string {
	if credential.LoadKey(afero.NewOsFs(), keyPath, nil) == credential.DefaultKey {
		return "default"
	}
	return "custom"
}
