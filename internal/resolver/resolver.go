// Package resolver sends a single A query to one nameserver over UDP and
// returns the addresses from the reply.
//
// Every call opens its own connected UDP socket, sends one datagram and
// waits for one acceptable reply. There is no retransmission, no TCP
// fallback and no caching. The wait is bounded by Options.Timeout and by the
// caller's context, whichever ends first.
//
// When VerifyResponse is set, datagrams that do not answer the query (wrong
// transaction ID, QR bit clear, non-standard opcode or a different question)
// are logged and dropped, and the resolver keeps waiting for the real reply
// until the deadline.
package resolver

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/jroosing/dnsstub/internal/dns"
	"github.com/jroosing/dnsstub/internal/helpers"
	"github.com/jroosing/dnsstub/internal/pool"
)

// Default option values.
const (
	DefaultTimeout  = 5 * time.Second
	DefaultRecvSize = dns.MaxMessageSize

	// MaxRecvSize is the largest UDP payload a reply can carry.
	MaxRecvSize = 65535
)

// Options configures a Resolver.
type Options struct {
	Nameserver          string        // host or host:port; port 53 when absent
	Timeout             time.Duration // Upper bound on the wait for a reply
	RecvSize            int           // Receive buffer size; longer datagrams are cut by the OS
	VerifyResponse      bool          // Drop replies that do not match the query
	SocketReceiveBuffer int           // SO_RCVBUF for the query socket; 0 keeps the OS default
	Logger              *slog.Logger  // Optional logger
}

// DefaultOptions returns the options the CLI starts from before applying
// its configuration: 5 second timeout, 512 byte replies, verification on.
func DefaultOptions(nameserver string) Options {
	return Options{
		Nameserver:     nameserver,
		Timeout:        DefaultTimeout,
		RecvSize:       DefaultRecvSize,
		VerifyResponse: true,
	}
}

// Resolver performs one-shot queries against a single nameserver.
// It holds no per-query state and is safe for concurrent use.
type Resolver struct {
	nameserver string
	timeout    time.Duration
	verify     bool
	rcvbuf     int
	buffers    *pool.Buffers
	logger     *slog.Logger
}

// New validates opts and returns a Resolver. Zero Timeout and RecvSize are
// replaced by their defaults.
func New(opts Options) (*Resolver, error) {
	addr, err := helpers.WithDefaultPort(opts.Nameserver, helpers.DefaultDNSPort)
	if err != nil {
		return nil, fmt.Errorf("resolver: nameserver: %w", err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	recvSize := opts.RecvSize
	if recvSize <= 0 {
		recvSize = DefaultRecvSize
	}
	recvSize = helpers.ClampInt(recvSize, dns.HeaderSize, MaxRecvSize)

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		nameserver: addr,
		timeout:    timeout,
		verify:     opts.VerifyResponse,
		rcvbuf:     opts.SocketReceiveBuffer,
		buffers:    pool.NewBuffers(recvSize),
		logger:     logger,
	}, nil
}

// Nameserver returns the host:port queries are sent to.
func (r *Resolver) Nameserver() string { return r.nameserver }

// Query resolves the IPv4 addresses of name. The addresses are returned in
// the order of the answer section; a successful reply without A records
// yields an empty slice. A reply with a non-zero RCODE fails with
// *ResponseError.
func (r *Resolver) Query(ctx context.Context, name string) ([]net.IP, error) {
	if err := dns.ValidateName(name); err != nil {
		return nil, err
	}
	id, err := randomID()
	if err != nil {
		return nil, err
	}

	resp, err := r.Exchange(ctx, dns.NewQuery(id, name))
	if err != nil {
		return nil, err
	}
	if rc := resp.Header.Flags.RCode; rc != dns.RCodeNoError {
		return nil, &ResponseError{Name: name, RCode: rc}
	}
	return resp.Addresses(), nil
}

// Exchange sends req and returns the decoded reply, whatever its RCODE.
//
// Goroutine lifecycle: No goroutines spawned by this method. Cancelling ctx
// unblocks the pending receive.
func (r *Resolver) Exchange(ctx context.Context, req dns.Message) (dns.Message, error) {
	if err := ctx.Err(); err != nil {
		return dns.Message{}, err
	}
	wire, err := req.Marshal()
	if err != nil {
		return dns.Message{}, err
	}

	d := net.Dialer{Control: socketControl(r.rcvbuf)}
	conn, err := d.DialContext(ctx, "udp", r.nameserver)
	if err != nil {
		return dns.Message{}, fmt.Errorf("%w: dial %s: %w", ErrTransport, r.nameserver, err)
	}
	defer conn.Close()

	// Read deadline from timeout or context, whichever is sooner
	deadline := time.Now().Add(r.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return dns.Message{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	if _, err := conn.Write(wire); err != nil {
		return dns.Message{}, r.ioError(ctx, "send", err)
	}
	r.logger.Debug("query sent", "id", req.Header.ID, "nameserver", r.nameserver, "bytes", len(wire))

	bufp := r.buffers.Get()
	defer r.buffers.Put(bufp)
	buf := *bufp

	for {
		n, err := conn.Read(buf)
		if err != nil {
			return dns.Message{}, r.ioError(ctx, "receive", err)
		}
		r.logger.Debug("reply received", "id", req.Header.ID, "nameserver", r.nameserver, "bytes", n)

		resp, err := r.accept(req, buf[:n])
		if errors.Is(err, errDiscard) {
			continue
		}
		if err != nil {
			return dns.Message{}, err
		}
		return resp, nil
	}
}

// errDiscard marks a datagram that is not a reply to the pending query.
var errDiscard = errors.New("discard")

// accept decodes a received datagram. Datagrams that fail verification
// return errDiscard; decode errors of a matching datagram are returned as-is.
func (r *Resolver) accept(req dns.Message, b []byte) (dns.Message, error) {
	if !r.verify {
		return dns.ParseMessage(b)
	}

	// Check the ID before decoding anything else so stray traffic is cheap.
	if len(b) < 2 {
		r.logger.Debug("discarding reply", "id", req.Header.ID, "nameserver", r.nameserver,
			"bytes", len(b), "reason", "runt datagram")
		return dns.Message{}, errDiscard
	}
	if got := binary.BigEndian.Uint16(b[:2]); got != req.Header.ID {
		r.logger.Debug("discarding reply", "id", req.Header.ID, "nameserver", r.nameserver,
			"bytes", len(b), "reason", "transaction id mismatch", "got_id", got)
		return dns.Message{}, errDiscard
	}

	resp, err := dns.ParseResponse(b)
	if errors.Is(err, dns.ErrNotResponse) {
		r.logger.Debug("discarding reply", "id", req.Header.ID, "nameserver", r.nameserver,
			"bytes", len(b), "reason", err.Error())
		return dns.Message{}, errDiscard
	}
	if err != nil {
		return dns.Message{}, err
	}
	if err := dns.MatchesQuery(req, resp); err != nil {
		r.logger.Debug("discarding reply", "id", req.Header.ID, "nameserver", r.nameserver,
			"bytes", len(b), "reason", err.Error())
		return dns.Message{}, errDiscard
	}
	return resp, nil
}

// ioError classifies a socket error. Cancellation wins over everything
// else; deadline expiry becomes ErrTimeout.
func (r *Resolver) ioError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w", ErrTimeout, ctxErr)
		}
		return ctxErr
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: no reply from %s within %s", ErrTimeout, r.nameserver, r.timeout)
	}
	return fmt.Errorf("%w: %s: %w", ErrTransport, op, err)
}

// randomID returns an unpredictable transaction ID.
func randomID() (uint16, error) {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("generating transaction id: %w", err)
	}
	return binary.BigEndian.Uint16(b[:]), nil
}
