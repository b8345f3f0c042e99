package locations

import (
	"context"
	"regexp"
	"sync"

	"github.com/nikmy/timebot/internal/repo"
	"github.com/nikmy/timebot/internal/zones"
	"github.com/nikmy/timebot/pkg/errors"
	"github.com/nikmy/timebot/pkg/logger"
)

const DefaultAccount = "default"

var (
	ErrEmptyLabel       = errors.New("empty label")
	ErrInvalidAccount   = errors.New("invalid account name")
	ErrAccountNotFound  = errors.New("account not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrStoreUnavailable = errors.New("location store unavailable")
	ErrInvalidTimezone  = zones.ErrInvalidTimezone
)

var accountPattern = regexp.MustCompile(`^[\p{L}\p{N}_-]{1,64}$`)

func ValidAccount(account string) bool {
	return accountPattern.MatchString(account)
}

func New(r repo.Repo[Set], log logger.Logger) *Store {
	return &Store{
		repo: r,
		log:  log.With("locations"),
	}
}

// Store serializes its own read-modify-write operations. Other
// processes sharing the storage may still interleave with it.
type Store struct {
	mu   sync.Mutex
	repo repo.Repo[Set]
	log  logger.Logger
}

// Get reads the set of account as is.
func (s *Store) Get(ctx context.Context, account string) (Set, error) {
	if !ValidAccount(account) {
		return nil, errors.Wrapf(ErrInvalidAccount, "%q", account)
	}

	set, err := s.repo.Get(ctx, account)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, errors.Wrapf(ErrAccountNotFound, "%q", account)
	}
	if err != nil {
		return nil, errors.Mark(errors.WrapFailf(err, "read set of %q", account), ErrStoreUnavailable)
	}

	return set, nil
}

// Load reads the set of account. An unknown account gets a copy of
// the default set, which is persisted under its name right away.
func (s *Store) Load(ctx context.Context, account string) (Set, error) {
	set, err := s.Get(ctx, account)
	if !errors.Is(err, ErrAccountNotFound) || account == DefaultAccount {
		return set, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, err = s.Get(ctx, account)
	if !errors.Is(err, ErrAccountNotFound) {
		return set, err
	}

	defaults, err := s.Get(ctx, DefaultAccount)
	if err != nil {
		return nil, errors.WrapFail(err, "read default set")
	}

	set = defaults.Clone()
	err = s.save(ctx, account, set)
	if err != nil {
		return nil, err
	}

	s.log.Infof("account %q created from %q", account, DefaultAccount)
	return set, nil
}

func (s *Store) Save(ctx context.Context, account string, set Set) error {
	if !ValidAccount(account) {
		return errors.Wrapf(ErrInvalidAccount, "%q", account)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(ctx, account, set)
}

// AddLocation validates zone, then the label, and only then touches storage.
// The zone is stored in its canonical spelling whatever case it came in.
// An unknown account starts from an empty set.
func (s *Store) AddLocation(ctx context.Context, account string, rawLabel string, rawZone string) (Set, error) {
	zone, err := zones.Canonical(rawZone)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidTimezone, "%q", rawZone)
	}

	label := SanitizeLabel(rawLabel)
	if label == "" {
		return nil, errors.Wrapf(ErrEmptyLabel, "%q", rawLabel)
	}

	if !ValidAccount(account) {
		return nil, errors.Wrapf(ErrInvalidAccount, "%q", account)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.Get(ctx, account)
	if err != nil && !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	set = set.With(label, zone)

	err = s.save(ctx, account, set)
	if err != nil {
		return nil, err
	}

	return set, nil
}

func (s *Store) DeleteLocation(ctx context.Context, account string, rawLabel string) (Set, error) {
	label := SanitizeLabel(rawLabel)

	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.Get(ctx, account)
	if err != nil {
		return nil, err
	}

	set, found := set.Without(label)
	if !found {
		return nil, errors.Wrapf(ErrLocationNotFound, "%q in %q", label, account)
	}

	err = s.save(ctx, account, set)
	if err != nil {
		return nil, err
	}

	return set, nil
}

// SeedDefault stores defaults as the default set unless one is already persisted.
func (s *Store) SeedDefault(ctx context.Context, defaults Set) error {
	for _, l := range defaults {
		if SanitizeLabel(l.Label) != l.Label || l.Label == "" {
			return errors.Wrapf(ErrEmptyLabel, "default label %q must consist of letters", l.Label)
		}
		if !zones.IsValid(l.Zone) {
			return errors.Wrapf(ErrInvalidTimezone, "default zone %q of %s", l.Zone, l.Label)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.Get(ctx, DefaultAccount)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return err
	}

	s.log.Infof("seeding %q with %d locations", DefaultAccount, len(defaults))
	return s.save(ctx, DefaultAccount, defaults.Clone())
}

func (s *Store) Accounts(ctx context.Context) ([]string, error) {
	keys, err := s.repo.Keys(ctx)
	return keys, errors.Mark(errors.WrapFail(err, "list accounts"), ErrStoreUnavailable)
}

func (s *Store) save(ctx context.Context, account string, set Set) error {
	if set == nil {
		set = Set{}
	}

	err := s.repo.Put(ctx, account, set)
	return errors.Mark(errors.WrapFailf(err, "save set of %q", account), ErrStoreUnavailable)
}
