// Package denylist keeps the banned accounts and banned IP addresses of a
// pool in a sqlite database, with in-memory sets for point lookups.
package denylist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/netip"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ncruces/go-strftime"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"go.coinshield.dev/wordcodec"
)

// Kind names a class of banned entries.
type Kind string

const (
	// Account entries are pool account names.
	Account Kind = "account"

	// IPAddress entries are normalized IP addresses.
	IPAddress Kind = "ip"

	// DateTimeFormat is the strftime layout used for ban timestamps.
	DateTimeFormat = "%Y-%m-%d.%X"
)

var (
	// ErrInvalidAddress is returned for a string that is not an IP address.
	ErrInvalidAddress = errors.New("invalid IP address")

	// ErrInvalidAccount is returned for an empty account name.
	ErrInvalidAccount = errors.New("invalid account")
)

const schema = `CREATE TABLE IF NOT EXISTS banned (
	kind      TEXT    NOT NULL,
	value     BLOB    NOT NULL,
	banned_at INTEGER NOT NULL,
	PRIMARY KEY (kind, value)
)`

// Entry is one banned account or address.
type Entry struct {
	Kind     Kind
	Value    string
	BannedAt time.Time
}

// FormatBannedAt renders the ban time as YYYY-MM-DD.HH:MM:SS in UTC.
func (e Entry) FormatBannedAt() string {
	return strftime.Format(DateTimeFormat, e.BannedAt.UTC())
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithClock sets the clock used to stamp new entries.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.now = clock
		}
	}
}

// Store is a persisted denylist. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	log *zap.Logger
	now func() time.Time

	mu       sync.RWMutex
	accounts map[string]time.Time
	ips      map[string]time.Time
}

// Open opens or creates the denylist database at path. The in-memory sets
// start empty; call LoadBannedAccounts and LoadBannedIPAddresses to fill them.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open denylist %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create denylist schema: %w", err)
	}

	s := &Store{
		db:       db,
		log:      zap.NewNop(),
		now:      time.Now,
		accounts: make(map[string]time.Time),
		ips:      make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("module", "denylist"), zap.String("path", path))
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadBannedAccounts replaces the in-memory account set with the persisted
// one and returns how many accounts are banned.
func (s *Store) LoadBannedAccounts(ctx context.Context) (int, error) {
	set, err := s.load(ctx, Account)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.accounts = set
	s.mu.Unlock()

	s.log.Info("loaded banned accounts", zap.Int("count", len(set)))
	return len(set), nil
}

// LoadBannedIPAddresses replaces the in-memory address set with the persisted
// one and returns how many addresses are banned.
func (s *Store) LoadBannedIPAddresses(ctx context.Context) (int, error) {
	set, err := s.load(ctx, IPAddress)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.ips = set
	s.mu.Unlock()

	s.log.Info("loaded banned IP addresses", zap.Int("count", len(set)))
	return len(set), nil
}

func (s *Store) load(ctx context.Context, kind Kind) (map[string]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT value, banned_at FROM banned WHERE kind = ?`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query banned %s entries: %w", kind, err)
	}
	defer rows.Close()

	set := make(map[string]time.Time)
	for rows.Next() {
		var (
			raw []byte
			at  int64
		)
		if err := rows.Scan(&raw, &at); err != nil {
			return nil, fmt.Errorf("failed to scan banned %s entry: %w", kind, err)
		}
		set[wordcodec.DecodeString(raw, 0)] = time.Unix(at, 0)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read banned %s entries: %w", kind, err)
	}
	return set, nil
}

// SaveBannedIPAddress bans an IP address, persisting it and adding it to the
// in-memory set. Saving an address twice keeps the first ban time.
func (s *Store) SaveBannedIPAddress(ctx context.Context, ip string) error {
	addr, err := NormalizeIP(ip)
	if err != nil {
		return err
	}
	if err := s.save(ctx, IPAddress, addr); err != nil {
		return err
	}
	s.log.Info("banned IP address", zap.String("ip", addr))
	return nil
}

// BanAccount bans an account, persisting it and adding it to the in-memory set.
func (s *Store) BanAccount(ctx context.Context, account string) error {
	account = strings.TrimSpace(account)
	if account == "" {
		return ErrInvalidAccount
	}
	if err := s.save(ctx, Account, account); err != nil {
		return err
	}
	s.log.Info("banned account", zap.String("account", account))
	return nil
}

func (s *Store) save(ctx context.Context, kind Kind, value string) error {
	at := s.now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO banned (kind, value, banned_at) VALUES (?, ?, ?) ON CONFLICT (kind, value) DO NOTHING`,
		string(kind), wordcodec.EncodeString(value), at.Unix())
	if err != nil {
		return fmt.Errorf("failed to save banned %s %q: %w", kind, value, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.set(kind)
	if _, ok := set[value]; !ok {
		set[value] = time.Unix(at.Unix(), 0)
	}
	return nil
}

// set returns the in-memory set for kind. Callers hold mu.
func (s *Store) set(kind Kind) map[string]time.Time {
	if kind == Account {
		return s.accounts
	}
	return s.ips
}

// IsBannedIPAddress reports whether ip is banned. Unparseable input is never banned.
func (s *Store) IsBannedIPAddress(ip string) bool {
	addr, err := NormalizeIP(ip)
	if err != nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ips[addr]
	return ok
}

// IsBannedAccount reports whether account is banned.
func (s *Store) IsBannedAccount(account string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[strings.TrimSpace(account)]
	return ok
}

// Entries returns the in-memory entries of kind sorted by value.
func (s *Store) Entries(kind Kind) []Entry {
	s.mu.RLock()
	set := s.set(kind)
	entries := make([]Entry, 0, len(set))
	for v, at := range set {
		entries = append(entries, Entry{Kind: kind, Value: v, BannedAt: at})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Value < entries[j].Value })
	return entries
}

// NormalizeIP returns the canonical text form of an IP address. IPv4-mapped
// IPv6 addresses are reduced to IPv4.
func NormalizeIP(ip string) (string, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidAddress, ip, err)
	}
	return addr.Unmap().String(), nil
}
