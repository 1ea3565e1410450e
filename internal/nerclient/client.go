package nerclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/vk/nerbox/internal/ctxlog"
)

const (
	DefaultHost    = "localhost"
	DefaultPort    = 9001
	DefaultTimeout = 10 * time.Second
)

// Client tags text against a NER server. Each line costs one TCP
// connection, which is what the server expects; there is no session state.
type Client struct {
	Host string
	Port int
	// Timeout bounds each round trip on the wire. Zero means DefaultTimeout.
	Timeout time.Duration
}

// New returns a Client for the given endpoint. Empty host or zero port fall
// back to the defaults.
func New(host string, port int) *Client {
	if host == "" {
		host = DefaultHost
	}
	if port == 0 {
		port = DefaultPort
	}
	return &Client{Host: host, Port: port}
}

func (c *Client) addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

// Tag tags a whole text. The text is split into lines, each line is tagged
// on its own round trip, and the resulting tokens are concatenated in
// order. Characters the server cannot tokenize (invalid UTF-8 and the
// replacement character) are removed first so the server does not log
// warnings about them.
func (c *Client) Tag(ctx context.Context, text string) ([]Token, error) {
	text = clean(text)

	var tokens []Token
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tagged, err := c.TagLine(ctx, line)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, ParseSlashTags(tagged)...)
	}
	return tokens, nil
}

// TagLine sends one line to the server and returns the slash-tagged reply.
// A connection the server drops mid-flight is retried once on a fresh
// connection; a refused connection gets a hint about starting the server.
func (c *Client) TagLine(ctx context.Context, line string) (string, error) {
	tagged, err := c.roundTrip(ctx, line)
	if err == nil {
		return tagged, nil
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) || errors.Is(err, io.EOF) {
		ctxlog.FromContext(ctx).Debug("Server dropped the connection, retrying once.", "addr", c.addr())
		return c.roundTrip(ctx, line)
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return "", fmt.Errorf("no server listening at %s (start one with nerbox): %w", c.addr(), err)
	}
	return "", err
}

func (c *Client) roundTrip(ctx context.Context, line string) (string, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", c.addr())
	if err != nil {
		return "", err
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(c.timeout()))

	if _, err := io.WriteString(conn, sanitizeLine(line)+"\n"); err != nil {
		return "", err
	}

	tagged, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && (tagged == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(tagged, "\r\n"), nil
}

// WaitReady blocks until a TCP connection to the server succeeds or ctx
// expires. It is how callers bridge the gap between spawning the server
// and its JVM actually listening.
func (c *Client) WaitReady(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		dialer := net.Dialer{Timeout: c.timeout()}
		conn, err := dialer.DialContext(ctx, "tcp", c.addr())
		if err == nil {
			_ = conn.Close()
			return nil
		}
		logger.Debug("Server not ready yet.", "addr", c.addr(), "error", err)

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for server at %s: %w", c.addr(), ctx.Err())
		case <-ticker.C:
		}
	}
}

// clean drops byte sequences the server's tokenizer has no answer for.
func clean(text string) string {
	return strings.ReplaceAll(strings.ToValidUTF8(text, ""), "�", "")
}

var lineControls = strings.NewReplacer("\f", "", "\n", "", "\r", "", "\t", "", "\v", "")

// sanitizeLine strips control whitespace so the payload stays a single
// protocol line.
func sanitizeLine(line string) string {
	return lineControls.Replace(line)
}
