package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"swiftmeet/internal/adapters/auth"
	"swiftmeet/internal/domain"
)

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
	Long:  "hash-password prompts for the organizer password without echo and prints its bcrypt hash. When stdin is not a terminal the first line is read instead.",
	RunE:  runHashPassword,
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	fd := int(os.Stdin.Fd())
	var password string
	if term.IsTerminal(fd) {
		p1, err := promptPassword(cmd.ErrOrStderr(), fd, "Enter password:   ")
		if err != nil {
			return err
		}
		p2, err := promptPassword(cmd.ErrOrStderr(), fd, "Confirm password: ")
		if err != nil {
			return err
		}
		if p1 != p2 {
			return errors.New("passwords do not match")
		}
		password = p1
	} else {
		line, err := readLine(cmd.InOrStdin())
		if err != nil {
			return err
		}
		password = line
	}

	hash, err := hashPassword(auth.NewBcryptHasher(0), password)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

func promptPassword(w io.Writer, fd int, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func hashPassword(hasher domain.PasswordHasher, password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	if len(password) < 8 {
		return "", errors.New("password must be at least 8 characters")
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return hash, nil
}
