package push

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"frictlistAPI/internal/logger"
)

const apnsTokenLength = 32

// APNSSender speaks the legacy binary framing to the Apple push gateway
// over a persistent TLS connection authenticated with a provider
// certificate: 1-byte command (0), 2-byte big-endian token length (32), raw
// token bytes, 2-byte big-endian payload length, JSON payload.
type APNSSender struct {
	gateway string
	config  *tls.Config

	mu   sync.Mutex
	conn net.Conn
}

func NewAPNSSender(gateway, certFile, keyFile string) (*APNSSender, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNS certificate: %w", err)
	}

	host, _, err := net.SplitHostPort(gateway)
	if err != nil {
		return nil, fmt.Errorf("invalid APNS gateway %q: %w", gateway, err)
	}

	return &APNSSender{
		gateway: gateway,
		config: &tls.Config{
			Certificates: []tls.Certificate{cert},
			ServerName:   host,
		},
	}, nil
}

type apsPayload struct {
	APS aps `json:"aps"`
}

type aps struct {
	Alert string `json:"alert"`
	Sound string `json:"sound"`
}

// Frame builds the legacy binary notification for a hex device token.
func Frame(deviceToken, message string) ([]byte, error) {
	token, err := hex.DecodeString(deviceToken)
	if err != nil {
		return nil, fmt.Errorf("device token is not hex: %w", err)
	}
	if len(token) != apnsTokenLength {
		return nil, fmt.Errorf("device token is %d bytes, want %d", len(token), apnsTokenLength)
	}

	payload, err := json.Marshal(apsPayload{APS: aps{Alert: message, Sound: "default"}})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte(0)
	binary.Write(&buf, binary.BigEndian, uint16(apnsTokenLength))
	buf.Write(token)
	binary.Write(&buf, binary.BigEndian, uint16(len(payload)))
	buf.Write(payload)
	return buf.Bytes(), nil
}

func (s *APNSSender) Send(ctx context.Context, deviceToken, message string) error {
	frame, err := Frame(deviceToken, message)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(ctx, frame); err != nil {
		// The gateway drops connections silently; retry once on a fresh one.
		s.close()
		if err = s.write(ctx, frame); err != nil {
			s.close()
			return err
		}
	}
	return nil
}

func (s *APNSSender) write(ctx context.Context, frame []byte) error {
	if s.conn == nil {
		dialer := &net.Dialer{Timeout: 10 * time.Second}
		conn, err := tls.DialWithDialer(dialer, "tcp", s.gateway, s.config)
		if err != nil {
			return fmt.Errorf("failed to connect to APNS gateway: %w", err)
		}
		s.conn = conn
		logger.Infof("Connected to APNS gateway %s", s.gateway)
	}

	if deadline, ok := ctx.Deadline(); ok {
		s.conn.SetWriteDeadline(deadline)
	} else {
		s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	}

	_, err := s.conn.Write(frame)
	return err
}

func (s *APNSSender) close() {
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}

// Close shuts the persistent gateway connection down.
func (s *APNSSender) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.close()
}
