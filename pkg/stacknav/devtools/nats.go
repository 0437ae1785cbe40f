package devtools

import (
	"fmt"
	"log/slog"

	_ "github.com/BrandonKowalski/certifiable" // Add CA certificates to the default trust store
	"github.com/nats-io/nats.go"
)

// DefaultSubject is used when NATSSink is given no subject.
const DefaultSubject = "stacknav.devtools"

// NATSSink publishes entries to a NATS subject for a remote inspector.
type NATSSink struct {
	conn    *nats.Conn
	subject string
}

// NewNATSSink connects to url. Close the sink when done.
func NewNATSSink(url, subject string) (*NATSSink, error) {
	if url == "" {
		return nil, fmt.Errorf("devtools: nats url is required")
	}
	if subject == "" {
		subject = DefaultSubject
	}

	conn, err := nats.Connect(url, nats.Name("stacknav-devtools"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	slog.Info("NATS devtools sink initialized", "url", url, "subject", subject)
	return &NATSSink{conn: conn, subject: subject}, nil
}

// Publish sends data on the sink's subject.
func (s *NATSSink) Publish(data []byte) error {
	if err := s.conn.Publish(s.subject, data); err != nil {
		return fmt.Errorf("failed to publish devtools entry: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (s *NATSSink) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	defer s.conn.Close()
	return s.conn.Flush()
}
