package store

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// TransferType labels a completed deal in the history.
type TransferType string

const (
	TransferOffer    TransferType = "offer"
	TransferContract TransferType = "contract"
	TransferLoan     TransferType = "loan"
	TransferTrade    TransferType = "trade"
	TransferRelease  TransferType = "release"
)

// TransferRecord is one completed transfer, appended on a terminal
// accept and never edited.
type TransferRecord struct {
	Player   snowflake.ID `json:"player"`
	Type     TransferType `json:"type"`
	FromTeam string       `json:"from_team,omitempty"`
	ToTeam   string       `json:"to_team,omitempty"`
	Amount   int64        `json:"amount,omitempty"`
	Salary   int64        `json:"salary,omitempty"`
	Date     time.Time    `json:"date"`
}

type historyDoc map[string][]TransferRecord

func newHistoryDoc() historyDoc { return make(historyDoc) }

// TransferHistoryStore keeps the append-only per-guild transfer log in
// transfers.json.
type TransferHistoryStore struct {
	file *jsonFile
}

func NewTransferHistoryStore(dir string) *TransferHistoryStore {
	return &TransferHistoryStore{file: newJSONFile(dir, "transfers.json")}
}

func (s *TransferHistoryStore) Record(guild snowflake.ID, rec TransferRecord) error {
	if rec.Date.IsZero() {
		rec.Date = time.Now()
	}
	return update(s.file, newHistoryDoc, func(doc historyDoc) (bool, error) {
		doc[guild.String()] = append(doc[guild.String()], rec)
		return true, nil
	})
}

// List reports one page most-recent-first together with the total
// record count. Pages are zero-based.
func (s *TransferHistoryStore) List(guild snowflake.ID, page, pageSize int) ([]TransferRecord, int, error) {
	var all []TransferRecord
	err := view(s.file, newHistoryDoc, func(doc historyDoc) error {
		all = append(all, doc[guild.String()]...)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	// Insertion order is oldest-first; listings show newest first.
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}

	total := len(all)
	start := page * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

// ResetAll clears the guild's history.
func (s *TransferHistoryStore) ResetAll(guild snowflake.ID) error {
	return update(s.file, newHistoryDoc, func(doc historyDoc) (bool, error) {
		if _, ok := doc[guild.String()]; !ok {
			return false, nil
		}
		delete(doc, guild.String())
		return true, nil
	})
}
