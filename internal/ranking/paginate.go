package ranking

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

// Envelope is the pagination block returned with every ranked page.
type Envelope struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NormalizePage clamps page/limit to sane values: page is 1-indexed,
// limit defaults to 10 and caps at 50.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// NewEnvelope computes the envelope for a full candidate set of size total.
func NewEnvelope(total int64, page, limit int) Envelope {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Envelope{
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Slice cuts one page out of the fully ordered candidate set. Ranking is
// always computed over the whole eligible set first; only the slice happens
// here.
func Slice(ordered []Scored, page, limit int) []Scored {
	offset := (page - 1) * limit
	if offset >= len(ordered) {
		return nil
	}
	end := offset + limit
	if end > len(ordered) {
		end = len(ordered)
	}
	return ordered[offset:end]
}
