package session

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AlexZinkM/ton-gamefi/internal/client"
	"github.com/AlexZinkM/ton-gamefi/internal/crypto"
	"github.com/AlexZinkM/ton-gamefi/internal/metrics"
	"github.com/AlexZinkM/ton-gamefi/internal/model"
	"github.com/AlexZinkM/ton-gamefi/internal/storage"
)

const (
	defaultConnectTimeout = 5 * time.Minute
	defaultRetryDelay     = time.Second
	maxRetryDelay         = 30 * time.Second
	storeTimeout          = 5 * time.Second
)

// Bridge carries encrypted messages between the app and the wallet
type Bridge interface {
	Listen(ctx context.Context, clientID, lastEventID string, handle func(client.BridgeEvent)) error
	Send(ctx context.Context, clientID, to, message, topic string) error
}

// Options configure a Manager
type Options struct {
	ManifestURL    string
	ReturnStrategy string
	UniversalLink  string
	Network        string // chain id put on outgoing requests
	ConnectTimeout time.Duration
	RetryDelay     time.Duration // first reconnect delay of the event stream
}

type persistedSession struct {
	PrivateKey      string         `json:"privateKey"`
	WalletPublicKey string         `json:"walletPublicKey"`
	Account         *model.Account `json:"account"`
	LastEventID     string         `json:"lastEventId,omitempty"`
	NextRequestID   uint64         `json:"nextRequestId"`
}

type response struct {
	result string
	err    error
}

// Manager owns the single wallet session and is the only way to submit transactions
type Manager struct {
	bridge Bridge
	store  storage.Store
	opts   Options
	logger *zap.Logger
	now    func() time.Time
	events dispatcher

	mu             sync.Mutex
	session        model.WalletSession
	keys           *crypto.KeyPair
	walletKey      [32]byte
	lastEventID    string
	nextID         uint64
	handshake      *Handshake
	handshakeTimer *time.Timer
	stopListen     context.CancelFunc
	pending        map[string]chan response
}

// NewManager creates a disconnected manager. Call RestoreConnection to pick up a persisted session.
func NewManager(bridge Bridge, store storage.Store, opts Options, logger *zap.Logger) *Manager {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = defaultConnectTimeout
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	return &Manager{
		bridge:  bridge,
		store:   store,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
		session: model.WalletSession{Status: model.StatusDisconnected},
		pending: make(map[string]chan response),
	}
}

// WithClock replaces the clock used for validity checks
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Session returns a copy of the current session
func (m *Manager) Session() model.WalletSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Clone()
}

// OnStatusChange registers cb for every status transition. Callbacks run in
// registration order and see transitions in the order they happened.
func (m *Manager) OnStatusChange(cb func(model.StatusEvent)) (cancel func()) {
	return m.events.add(cb)
}

// Subscribe is OnStatusChange over a channel. The channel is never closed;
// a slow reader holds back delivery to later subscribers.
func (m *Manager) Subscribe(buffer int) (<-chan model.StatusEvent, func()) {
	ch := make(chan model.StatusEvent, buffer)
	done := make(chan struct{})
	remove := m.events.add(func(ev model.StatusEvent) {
		select {
		case ch <- ev:
		case <-done:
		}
	})

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			close(done)
			remove()
		})
	}
}

// Connect starts a handshake. While one is in flight the same handshake is returned;
// while connected the returned handshake is already complete.
func (m *Manager) Connect(ctx context.Context) (*Handshake, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	switch m.session.Status {
	case model.StatusConnected:
		h := completedHandshake(m.session.Clone().Account)
		m.mu.Unlock()
		return h, nil
	case model.StatusConnecting:
		h := m.handshake
		m.mu.Unlock()
		return h, nil
	}

	keys, err := crypto.NewKeyPair()
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	link, err := universalLink(m.opts.UniversalLink, keys.ID(), m.opts.ManifestURL, m.opts.ReturnStrategy)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	qr, err := generateQR(link)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}

	h := newHandshake(model.ConnectLink{UniversalLink: link, QR: qr})
	m.keys = keys
	m.walletKey = [32]byte{}
	m.lastEventID = ""
	m.nextID = 1
	m.handshake = h
	m.handshakeTimer = time.AfterFunc(m.opts.ConnectTimeout, func() { m.expireHandshake(h) })
	m.transitionLocked(model.StatusConnecting, nil)
	m.startListenLocked(keys)
	m.mu.Unlock()

	m.events.flush()
	m.logger.Info("wallet handshake started", zap.String("client_id", keys.ID()))
	return h, nil
}

// RestoreConnection resumes the persisted session without user interaction.
// Without a persisted session the manager stays disconnected. Calling it again
// while connecting or connected changes nothing.
func (m *Manager) RestoreConnection(ctx context.Context) (model.WalletSession, error) {
	m.mu.Lock()
	if m.session.Status != model.StatusDisconnected {
		s := m.session.Clone()
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	raw, err := m.store.Get(ctx, storage.KeySession)
	if errors.Is(err, storage.ErrNotFound) {
		return m.Session(), nil
	}
	if err != nil {
		return m.Session(), fmt.Errorf("failed to load session: %w", err)
	}

	p, keys, walletKey, err := decodeSession(raw)
	if err != nil {
		m.logger.Warn("dropping unreadable persisted session", zap.Error(err))
		if err := m.store.Delete(ctx, storage.KeySession); err != nil {
			m.logger.Warn("failed to delete persisted session", zap.Error(err))
		}
		return m.Session(), nil
	}

	m.mu.Lock()
	if m.session.Status != model.StatusDisconnected {
		s := m.session.Clone()
		m.mu.Unlock()
		return s, nil
	}
	m.keys = keys
	m.walletKey = walletKey
	m.lastEventID = p.LastEventID
	m.nextID = max(p.NextRequestID, 1)
	m.transitionLocked(model.StatusConnecting, nil)
	m.transitionLocked(model.StatusConnected, p.Account)
	m.startListenLocked(keys)
	s := m.session.Clone()
	m.mu.Unlock()

	m.events.flush()
	m.logger.Info("wallet session restored", zap.String("address", p.Account.Address))
	return s, nil
}

// SendTransaction hands req to the wallet and waits for the signed BOC.
// The wait ends at req.ValidUntil at the latest.
func (m *Manager) SendTransaction(ctx context.Context, req model.TransactionRequest) (boc string, err error) {
	defer func() { metrics.Transactions.WithLabelValues(transactionResult(err)).Inc() }()

	now := m.now()

	m.mu.Lock()
	if m.session.Status != model.StatusConnected {
		m.mu.Unlock()
		return "", model.ErrWalletNotConnected
	}
	if err := req.Validate(now); err != nil {
		m.mu.Unlock()
		return "", fmt.Errorf("%w: %w", model.ErrTransactionRejected, err)
	}
	if req.From == "" {
		req.From = m.session.Account.Address
	}
	if req.Network == "" {
		req.Network = m.opts.Network
	}

	id := m.nextID
	m.nextID++
	rpc := newAppRequest("sendTransaction", id)
	ch := make(chan response, 1)
	m.pending[rpc.ID] = ch
	keys, walletKey := m.keys, m.walletKey
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.pending, rpc.ID)
		m.mu.Unlock()
	}()

	m.persist(snapshot)

	tx, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal transaction: %w", err)
	}
	rpc.Params = []string{string(tx)}

	if err := m.send(ctx, keys, walletKey, rpc, "sendTransaction"); err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrConnectionLost, err)
	}

	timer := time.NewTimer(req.Expiry().Sub(m.now()))
	defer timer.Stop()

	select {
	case resp := <-ch:
		if resp.err != nil {
			return "", resp.err
		}
		return resp.result, nil
	case <-timer.C:
		return "", fmt.Errorf("%w: no answer before %s", model.ErrTransactionExpired, req.Expiry().UTC().Format(time.RFC3339))
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Disconnect ends the session, tells the wallet (best effort) and forgets the persisted session
func (m *Manager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	if m.session.Status == model.StatusDisconnected {
		m.mu.Unlock()
		return nil
	}
	wasConnected := m.session.Status == model.StatusConnected
	keys, walletKey := m.keys, m.walletKey
	rpc := newAppRequest("disconnect", m.nextID)
	h := m.resetLocked(fmt.Errorf("%w: disconnected", model.ErrConnectionLost))
	m.transitionLocked(model.StatusDisconnected, nil)
	m.mu.Unlock()

	if wasConnected {
		if err := m.send(ctx, keys, walletKey, rpc, "disconnect"); err != nil {
			m.logger.Warn("failed to notify wallet about disconnect", zap.Error(err))
		}
	}

	err := m.store.Delete(ctx, storage.KeySession)
	m.events.flush()
	if h != nil {
		h.finish(nil, fmt.Errorf("%w: cancelled", model.ErrConnectionRejected))
	}
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close stops listening to the bridge. The persisted session is kept.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopListen != nil {
		m.stopListen()
		m.stopListen = nil
	}
}

func (m *Manager) transitionLocked(to model.Status, account *model.Account) {
	from := m.session.Status
	m.session = model.WalletSession{Status: to, Account: account}.Clone()

	if to == model.StatusConnected {
		metrics.SessionConnected.Set(1)
	} else {
		metrics.SessionConnected.Set(0)
	}

	m.events.enqueue(model.StatusEvent{
		From:    from,
		To:      to,
		Account: m.session.Clone().Account,
		At:      m.now(),
	})
	m.logger.Info("wallet status changed", zap.String("from", string(from)), zap.String("to", string(to)))
}

// resetLocked drops everything bound to the current session and returns the
// handshake that was in flight, if any
func (m *Manager) resetLocked(pendingErr error) *Handshake {
	if m.stopListen != nil {
		m.stopListen()
		m.stopListen = nil
	}
	if m.handshakeTimer != nil {
		m.handshakeTimer.Stop()
		m.handshakeTimer = nil
	}
	h := m.handshake
	m.handshake = nil
	m.keys = nil
	m.walletKey = [32]byte{}
	m.lastEventID = ""
	m.nextID = 0
	for id, ch := range m.pending {
		ch <- response{err: pendingErr}
		delete(m.pending, id)
	}
	return h
}

func (m *Manager) expireHandshake(h *Handshake) {
	m.mu.Lock()
	if m.handshake != h {
		m.mu.Unlock()
		return
	}
	m.resetLocked(model.ErrConnectionLost)
	m.transitionLocked(model.StatusDisconnected, nil)
	m.mu.Unlock()

	m.events.flush()
	h.finish(nil, fmt.Errorf("%w: no answer within %s", model.ErrConnectionRejected, m.opts.ConnectTimeout))
	m.logger.Info("wallet handshake timed out")
}

func (m *Manager) startListenLocked(keys *crypto.KeyPair) {
	ctx, cancel := context.WithCancel(context.Background())
	m.stopListen = cancel
	go m.listen(ctx, keys)
}

// listen keeps the event stream open while the session lives
func (m *Manager) listen(ctx context.Context, keys *crypto.KeyPair) {
	delay := m.opts.RetryDelay
	for {
		m.mu.Lock()
		last := m.lastEventID
		m.mu.Unlock()

		received := false
		err := m.bridge.Listen(ctx, keys.ID(), last, func(ev client.BridgeEvent) {
			received = true
			m.handleEvent(keys, ev)
		})
		if ctx.Err() != nil {
			return
		}

		m.failPending(keys, fmt.Errorf("%w: %w", model.ErrConnectionLost, err))
		if received {
			delay = m.opts.RetryDelay
		}
		m.logger.Warn("bridge stream dropped", zap.Error(err), zap.Duration("retry_in", delay))

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay = min(delay*2, maxRetryDelay)
	}
}

func (m *Manager) failPending(keys *crypto.KeyPair, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keys != keys {
		return
	}
	for id, ch := range m.pending {
		ch <- response{err: err}
		delete(m.pending, id)
	}
}

func (m *Manager) handleEvent(keys *crypto.KeyPair, ev client.BridgeEvent) {
	m.mu.Lock()
	if m.keys != keys {
		m.mu.Unlock()
		return
	}
	if ev.ID != "" {
		m.lastEventID = ev.ID
	}

	msg, peer, err := m.openLocked(ev)
	if err != nil {
		m.mu.Unlock()
		m.logger.Warn("skipping bridge message", zap.String("event_id", ev.ID), zap.Error(err))
		return
	}

	var (
		h       *Handshake
		account *model.Account
		hErr    error
		persist bool
		forget  bool
	)

	switch msg.Event {
	case "connect":
		if m.session.Status != model.StatusConnecting {
			break
		}
		var payload connectPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			hErr = fmt.Errorf("%w: malformed connect payload: %w", model.ErrConnectionRejected, err)
		} else if account, err = payload.account(); err != nil {
			hErr = fmt.Errorf("%w: %w", model.ErrConnectionRejected, err)
		}
		if hErr != nil {
			h = m.resetLocked(model.ErrConnectionLost)
			m.transitionLocked(model.StatusDisconnected, nil)
			break
		}
		h = m.handshake
		m.handshake = nil
		if m.handshakeTimer != nil {
			m.handshakeTimer.Stop()
			m.handshakeTimer = nil
		}
		m.walletKey = peer
		m.transitionLocked(model.StatusConnected, account)
		persist = true
	case "connect_error":
		if m.session.Status != model.StatusConnecting {
			break
		}
		var body walletErrorBody
		if err := json.Unmarshal(msg.Payload, &body); err != nil {
			body = walletErrorBody{Code: model.WalletCodeUnknown, Message: "malformed connect_error payload"}
		}
		h = m.resetLocked(model.ErrConnectionLost)
		m.transitionLocked(model.StatusDisconnected, nil)
		hErr = walletError(model.ErrConnectionRejected, &body)
	case "disconnect":
		h = m.resetLocked(fmt.Errorf("%w: wallet disconnected", model.ErrConnectionLost))
		m.transitionLocked(model.StatusDisconnected, nil)
		hErr = fmt.Errorf("%w: wallet disconnected", model.ErrConnectionRejected)
		forget = true
	case "":
		if ch, ok := m.pending[string(msg.ID)]; ok {
			delete(m.pending, string(msg.ID))
			ch <- responseFrom(msg)
		}
		persist = m.session.Status == model.StatusConnected
	default:
		m.logger.Debug("ignoring wallet event", zap.String("event", msg.Event))
	}

	var snapshot *persistedSession
	if persist {
		snapshot = m.snapshotLocked()
	}
	m.mu.Unlock()

	if snapshot != nil {
		m.persist(snapshot)
	}
	if forget {
		m.forget()
	}
	m.events.flush()
	if h != nil {
		h.finish(account, hErr)
	}
}

// openLocked decrypts a bridge message. While connecting any sender may answer;
// afterwards only the connected wallet is accepted.
func (m *Manager) openLocked(ev client.BridgeEvent) (*walletMessage, [32]byte, error) {
	var peer [32]byte
	if m.session.Status == model.StatusConnecting {
		key, err := crypto.ParseKey(ev.From)
		if err != nil {
			return nil, peer, fmt.Errorf("invalid sender: %w", err)
		}
		peer = key
	} else {
		peer = m.walletKey
		if ev.From != hex.EncodeToString(peer[:]) {
			return nil, peer, fmt.Errorf("unexpected sender %s", ev.From)
		}
	}

	sealed, err := base64.StdEncoding.DecodeString(ev.Message)
	if err != nil {
		return nil, peer, fmt.Errorf("failed to decode message: %w", err)
	}
	plain, err := m.keys.Decrypt(sealed, peer)
	if err != nil {
		return nil, peer, err
	}

	var msg walletMessage
	if err := json.Unmarshal(plain, &msg); err != nil {
		return nil, peer, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return &msg, peer, nil
}

func responseFrom(msg *walletMessage) response {
	if msg.Error != nil {
		return response{err: walletError(model.ErrTransactionRejected, msg.Error)}
	}
	var boc string
	if err := json.Unmarshal(msg.Result, &boc); err != nil {
		return response{err: fmt.Errorf("%w: malformed result: %w", model.ErrTransactionRejected, err)}
	}
	return response{result: boc}
}

func (m *Manager) send(ctx context.Context, keys *crypto.KeyPair, walletKey [32]byte, req appRequest, topic string) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", req.Method, err)
	}
	sealed, err := keys.Encrypt(body, walletKey)
	if err != nil {
		return err
	}
	return m.bridge.Send(ctx, keys.ID(), hex.EncodeToString(walletKey[:]), base64.StdEncoding.EncodeToString(sealed), topic)
}

func (m *Manager) snapshotLocked() *persistedSession {
	return &persistedSession{
		PrivateKey:      m.keys.PrivateHex(),
		WalletPublicKey: hex.EncodeToString(m.walletKey[:]),
		Account:         m.session.Clone().Account,
		LastEventID:     m.lastEventID,
		NextRequestID:   m.nextID,
	}
}

func (m *Manager) persist(p *persistedSession) {
	raw, err := json.Marshal(p)
	if err != nil {
		m.logger.Error("failed to marshal session", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := m.store.Set(ctx, storage.KeySession, raw); err != nil {
		m.logger.Error("failed to persist session", zap.Error(err))
	}
}

func (m *Manager) forget() {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := m.store.Delete(ctx, storage.KeySession); err != nil {
		m.logger.Error("failed to delete session", zap.Error(err))
	}
}

func decodeSession(raw []byte) (*persistedSession, *crypto.KeyPair, [32]byte, error) {
	var walletKey [32]byte
	var p persistedSession
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, nil, walletKey, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if p.Account == nil || p.Account.Address == "" {
		return nil, nil, walletKey, errors.New("session has no account")
	}
	keys, err := crypto.KeyPairFromHex(p.PrivateKey)
	if err != nil {
		return nil, nil, walletKey, fmt.Errorf("session key: %w", err)
	}
	walletKey, err = crypto.ParseKey(p.WalletPublicKey)
	if err != nil {
		return nil, nil, walletKey, fmt.Errorf("wallet key: %w", err)
	}
	return &p, keys, walletKey, nil
}

func transactionResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrTransactionRejected):
		return "rejected"
	case errors.Is(err, model.ErrTransactionExpired):
		return "expired"
	case errors.Is(err, model.ErrConnectionLost):
		return "lost"
	case errors.Is(err, model.ErrWalletNotConnected):
		return "not_connected"
	}
	return "error"
}
