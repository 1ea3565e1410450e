package testutil

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// StartTagServer runs a fake NER server for the duration of the test: one
// line per connection, answered by tag and a trailing newline. It returns
// the port it listens on, bound to 127.0.0.1.
func StartTagServer(t *testing.T, tag func(line string) string) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				line, err := bufio.NewReader(conn).ReadString('\n')
				if err != nil {
					return
				}
				fmt.Fprintf(conn, "%s\n", tag(strings.TrimRight(line, "\n")))
			}(conn)
		}
	}()

	return listener.Addr().(*net.TCPAddr).Port
}

// TagEveryWord returns a tagger that slash-tags each word of a line with
// the same label.
func TagEveryWord(label string) func(line string) string {
	return func(line string) string {
		fields := strings.Fields(line)
		for i, f := range fields {
			fields[i] = f + "/" + label
		}
		return strings.Join(fields, " ")
	}
}
