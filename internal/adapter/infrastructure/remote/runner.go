// Package remote provides the remote-execution channel adapter, running the
// reconfiguration routine on a target host over SSH.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"time"

	"prefixctl/internal/pkg/logging"
	"prefixctl/internal/pkg/secret"
	"prefixctl/internal/port"
	"prefixctl/internal/types"

	"golang.org/x/crypto/ssh"
)

const (
	// DefaultCommand is the binary invoked on the target; it must be on the
	// remote PATH.
	DefaultCommand = "prefixctl"

	// DefaultDialTimeout bounds SSH channel establishment per target.
	DefaultDialTimeout = 15 * time.Second
)

// Runner is an adapter that implements the RemoteRunner port using
// golang.org/x/crypto/ssh. Each target gets a fresh connection and a
// per-call session; no state is shared across targets.
type Runner struct {
	user        string
	port        int
	auth        []ssh.AuthMethod
	dialTimeout time.Duration
	command     string
}

// Ensure Runner implements the RemoteRunner port
var _ port.RemoteRunner = (*Runner)(nil)

// NewRunner creates an SSH runner. password may be nil when key-based auth
// is supplied; the secret is read at dial time, so clearing it invalidates
// the runner.
func NewRunner(user string, port int, signer ssh.Signer, password *secret.Secret, command string) *Runner {
	if port == 0 {
		port = 22
	}
	if command == "" {
		command = DefaultCommand
	}

	var auth []ssh.AuthMethod
	if signer != nil {
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if password != nil {
		auth = append(auth, ssh.PasswordCallback(func() (string, error) {
			if !password.IsSet() {
				return "", fmt.Errorf("credential already cleared")
			}
			return password.Value(), nil
		}))
	}

	return &Runner{
		user:        user,
		port:        port,
		auth:        auth,
		dialTimeout: DefaultDialTimeout,
		command:     command,
	}
}

// Run executes the reconfiguration routine on host and decodes the
// structured outcome from its stdout. A non-nil error means the channel
// itself could not be established; failures inside the remote routine are
// classified into the returned outcome instead.
func (r *Runner) Run(ctx context.Context, host string, desiredPrefix int) (types.ReconfigurationOutcome, error) {
	logger := logging.WithComponentAndTarget("remote", host)

	addr := net.JoinHostPort(host, strconv.Itoa(r.port))
	config := &ssh.ClientConfig{
		User: r.user,
		Auth: r.auth,
		// Fleet hosts are provisioned machines without distributed
		// known_hosts; host key verification is out of scope here.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         r.dialTimeout,
	}

	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return types.ReconfigurationOutcome{}, fmt.Errorf("SSH dial %s@%s: %w", r.user, addr, err)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return types.ReconfigurationOutcome{}, fmt.Errorf("SSH session on %s: %w", addr, err)
	}
	defer session.Close()

	remoteCmd := fmt.Sprintf("%s apply --prefix %d --json", r.command, desiredPrefix)
	logger.WithField("command", remoteCmd).Debug("Running remote reconfiguration")

	// The remote routine holds the session for the whole settle-and-verify
	// sequence; once it has begun it runs to commit or rollback.
	output, err := session.Output(remoteCmd)
	if err != nil {
		// The channel was established, so this is an in-routine failure,
		// not ConnectionFailed.
		return types.ReconfigurationOutcome{
			NewPrefixLength: desiredPrefix,
			Kind:            types.OutcomeError,
			Message:         fmt.Sprintf("remote command failed: %v", err),
		}, nil
	}

	outcome, err := decodeOutcome(output, desiredPrefix)
	if err != nil {
		return types.ReconfigurationOutcome{
			NewPrefixLength: desiredPrefix,
			Kind:            types.OutcomeError,
			Message:         err.Error(),
		}, nil
	}
	return outcome, nil
}

// decodeOutcome parses the JSON record emitted by the remote routine.
func decodeOutcome(output []byte, desiredPrefix int) (types.ReconfigurationOutcome, error) {
	var outcome types.ReconfigurationOutcome
	if err := json.Unmarshal(output, &outcome); err != nil {
		return types.ReconfigurationOutcome{}, fmt.Errorf("malformed remote outcome %q: %w", truncate(output, 120), err)
	}
	if outcome.Kind == "" {
		return types.ReconfigurationOutcome{}, fmt.Errorf("remote outcome missing result field")
	}
	if outcome.NewPrefixLength == 0 {
		outcome.NewPrefixLength = desiredPrefix
	}
	return outcome, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
