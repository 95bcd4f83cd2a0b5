package feedback

import (
	"context"
	"sort"
	"strings"
	"time"

	pkgerrors "github.com/muhfery/ecommerce-insights-backend/pkg/errors"
)

// TimestampLayout is the seconds-precision format entries are stamped with.
const TimestampLayout = "2006-01-02 15:04:05"

// SortOrder selects how listed feedback is ordered.
type SortOrder string

const (
	SortNewest        SortOrder = "newest"
	SortOldest        SortOrder = "oldest"
	SortRatingHighest SortOrder = "rating_desc"
	SortRatingLowest  SortOrder = "rating_asc"
)

// SubmitParams is a new feedback submission.
type SubmitParams struct {
	Name    string
	Message string
	Rating  int
}

// ListParams filters and orders the feedback listing.
type ListParams struct {
	MinRating int
	Sort      SortOrder
	Search    string
}

// ListResult is the filtered listing plus the unfiltered total.
type ListResult struct {
	Items []Entry `json:"items"`
	Total int     `json:"total"`
}

// Summary aggregates the whole store.
type Summary struct {
	Total     int     `json:"total"`
	AvgRating float64 `json:"avg_rating"`
}

// Service validates, persists, and lists visitor feedback.
type Service interface {
	Submit(ctx context.Context, params SubmitParams) (*Entry, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Summarize(ctx context.Context) (*Summary, error)
}

type service struct {
	store *Store
	now   func() time.Time
}

// NewService wires the feedback service to its backing store.
func NewService(store *Store) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "feedback store required")
	}
	return &service{store: store, now: time.Now}, nil
}

func (s *service) Submit(ctx context.Context, params SubmitParams) (*Entry, error) {
	if err := validate(params); err != nil {
		return nil, err
	}

	entry := Entry{
		Name:      strings.TrimSpace(params.Name),
		Message:   strings.TrimSpace(params.Message),
		Rating:    params.Rating,
		Timestamp: s.now().Format(TimestampLayout),
	}
	if err := s.store.Append(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	entries, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := &ListResult{Total: len(entries)}

	filtered := make([]Entry, 0, len(entries))
	needle := strings.ToLower(strings.TrimSpace(params.Search))
	for _, entry := range entries {
		if params.MinRating > 0 && entry.Rating < params.MinRating {
			continue
		}
		if needle != "" && !matches(entry, needle) {
			continue
		}
		filtered = append(filtered, entry)
	}

	sortEntries(filtered, params.Sort)
	result.Items = filtered
	return result, nil
}

func (s *service) Summarize(ctx context.Context) (*Summary, error) {
	entries, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Total: len(entries)}
	if len(entries) == 0 {
		return summary, nil
	}

	sum := 0
	for _, entry := range entries {
		sum += entry.Rating
	}
	summary.AvgRating = float64(sum) / float64(len(entries))
	return summary, nil
}

func validate(params SubmitParams) error {
	details := map[string]string{}
	if strings.TrimSpace(params.Name) == "" {
		details["name"] = "is required"
	}
	if strings.TrimSpace(params.Message) == "" {
		details["message"] = "is required"
	}
	if params.Rating < 1 || params.Rating > 5 {
		details["rating"] = "must be between 1 and 5"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid feedback").WithDetails(details)
	}
	return nil
}

func matches(entry Entry, needle string) bool {
	return strings.Contains(strings.ToLower(entry.Name), needle) ||
		strings.Contains(strings.ToLower(entry.Message), needle)
}

func sortEntries(entries []Entry, order SortOrder) {
	switch order {
	case SortOldest:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Timestamp < entries[j].Timestamp })
	case SortRatingHighest:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Rating > entries[j].Rating })
	case SortRatingLowest:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Rating < entries[j].Rating })
	default:
		// Newest first; the timestamp format sorts lexicographically.
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Timestamp > entries[j].Timestamp })
	}
}
