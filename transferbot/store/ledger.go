package store

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Account selects which side of a ledger entry a mutation targets.
type Account string

const (
	AccountCash Account = "cash"
	AccountBank Account = "bank"
)

// LedgerEntry is one user's economy state within a guild. Entries are
// created lazily with zero defaults on first touch and never deleted.
type LedgerEntry struct {
	Cash      int64                    `json:"cash"`
	Bank      int64                    `json:"bank"`
	LastWork  time.Time                `json:"last_work,omitempty"`
	Inventory map[string]InventoryLine `json:"inventory,omitempty"`
}

// InventoryLine is one owned shop item, keyed by item name.
type InventoryLine struct {
	Count    int    `json:"count"`
	Emoji    string `json:"emoji,omitempty"`
	Category string `json:"category,omitempty"`
}

type Balance struct {
	Cash int64
	Bank int64
}

type ledgerDoc map[string]map[string]*LedgerEntry

func (d ledgerDoc) entry(guild, user snowflake.ID) *LedgerEntry {
	g, ok := d[guild.String()]
	if !ok {
		g = make(map[string]*LedgerEntry)
		d[guild.String()] = g
	}
	e, ok := g[user.String()]
	if !ok {
		e = &LedgerEntry{}
		g[user.String()] = e
	}
	return e
}

// LedgerStore persists per-guild per-user balances, work timestamps
// and inventories in ledger.json.
type LedgerStore struct {
	file         *jsonFile
	workPayout   int64
	workCooldown time.Duration
}

func NewLedgerStore(dir string, workPayout int64, workCooldown time.Duration) *LedgerStore {
	return &LedgerStore{
		file:         newJSONFile(dir, "ledger.json"),
		workPayout:   workPayout,
		workCooldown: workCooldown,
	}
}

func newLedgerDoc() ledgerDoc { return make(ledgerDoc) }

// Balance never fails on a missing user; it reports zeros.
func (s *LedgerStore) Balance(guild, user snowflake.ID) (Balance, error) {
	var bal Balance
	err := view(s.file, newLedgerDoc, func(doc ledgerDoc) error {
		if g, ok := doc[guild.String()]; ok {
			if e, ok := g[user.String()]; ok {
				bal = Balance{Cash: e.Cash, Bank: e.Bank}
			}
		}
		return nil
	})
	return bal, err
}

// Adjust applies delta to one account, clamping the result at zero.
// Each call applies the delta again; there is no idempotency key.
func (s *LedgerStore) Adjust(guild, user snowflake.ID, delta int64, account Account) (int64, error) {
	var result int64
	err := update(s.file, newLedgerDoc, func(doc ledgerDoc) (bool, error) {
		e := doc.entry(guild, user)
		switch account {
		case AccountBank:
			e.Bank = clamp(e.Bank + delta)
			result = e.Bank
		default:
			e.Cash = clamp(e.Cash + delta)
			result = e.Cash
		}
		return true, nil
	})
	return result, err
}

// Transfer moves cash between two users within one read-modify-write
// cycle. Insufficient funds fail closed: neither side is touched.
func (s *LedgerStore) Transfer(guild, from, to snowflake.ID, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return update(s.file, newLedgerDoc, func(doc ledgerDoc) (bool, error) {
		sender := doc.entry(guild, from)
		if sender.Cash < amount {
			return false, ErrInsufficientFunds
		}
		receiver := doc.entry(guild, to)
		sender.Cash -= amount
		receiver.Cash += amount
		return true, nil
	})
}

// Deposit moves cash into the bank.
func (s *LedgerStore) Deposit(guild, user snowflake.ID, amount int64) (Balance, error) {
	return s.moveBetweenAccounts(guild, user, amount, true)
}

// Withdraw moves bank funds back into cash.
func (s *LedgerStore) Withdraw(guild, user snowflake.ID, amount int64) (Balance, error) {
	return s.moveBetweenAccounts(guild, user, amount, false)
}

func (s *LedgerStore) moveBetweenAccounts(guild, user snowflake.ID, amount int64, toBank bool) (Balance, error) {
	if amount <= 0 {
		return Balance{}, ErrInvalidAmount
	}
	var bal Balance
	err := update(s.file, newLedgerDoc, func(doc ledgerDoc) (bool, error) {
		e := doc.entry(guild, user)
		if toBank {
			if e.Cash < amount {
				return false, ErrInsufficientFunds
			}
			e.Cash -= amount
			e.Bank += amount
		} else {
			if e.Bank < amount {
				return false, ErrInsufficientFunds
			}
			e.Bank -= amount
			e.Cash += amount
		}
		bal = Balance{Cash: e.Cash, Bank: e.Bank}
		return true, nil
	})
	return bal, err
}

// Work pays the flat payout once per cooldown window. A call inside
// the window returns a CooldownError and leaves cash unchanged.
func (s *LedgerStore) Work(guild, user snowflake.ID) (int64, error) {
	var earned int64
	err := update(s.file, newLedgerDoc, func(doc ledgerDoc) (bool, error) {
		e := doc.entry(guild, user)
		if remaining := s.workCooldown - time.Since(e.LastWork); remaining > 0 {
			return false, &CooldownError{Remaining: remaining}
		}
		e.Cash += s.workPayout
		e.LastWork = time.Now()
		earned = s.workPayout
		return true, nil
	})
	return earned, err
}

// Buy debits the item price from cash and upserts one inventory line
// keyed by item name, remembering emoji and category for display.
func (s *LedgerStore) Buy(guild, user snowflake.ID, name string, item ShopItem) error {
	return update(s.file, newLedgerDoc, func(doc ledgerDoc) (bool, error) {
		e := doc.entry(guild, user)
		if e.Cash < item.Price {
			return false, ErrInsufficientFunds
		}
		e.Cash -= item.Price
		if e.Inventory == nil {
			e.Inventory = make(map[string]InventoryLine)
		}
		line := e.Inventory[name]
		line.Count++
		line.Emoji = item.Emoji
		line.Category = item.Category
		e.Inventory[name] = line
		return true, nil
	})
}

// Inventory reports a copy of the user's owned items.
func (s *LedgerStore) Inventory(guild, user snowflake.ID) (map[string]InventoryLine, error) {
	inv := make(map[string]InventoryLine)
	err := view(s.file, newLedgerDoc, func(doc ledgerDoc) error {
		if g, ok := doc[guild.String()]; ok {
			if e, ok := g[user.String()]; ok {
				for k, v := range e.Inventory {
					inv[k] = v
				}
			}
		}
		return nil
	})
	return inv, err
}

func clamp(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
