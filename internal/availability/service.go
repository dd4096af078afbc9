package availability

import (
	"context"
	"log"
	"time"

	"github.com/gigstage/gigstage-backend/internal/apperr"
	"gorm.io/gorm"
)

type Service interface {
	// Replace applies delete-all-then-insert semantics to the user's
	// availability set. Malformed rows are skipped, never fatal.
	Replace(ctx context.Context, userID uint, entries []EntryInput) (int, error)

	// Create is the independent single-entry path used by the calendar
	// widget; it validates the window strictly.
	Create(ctx context.Context, userID uint, date, start, end, note string) (*Availability, error)

	List(ctx context.Context, userID uint) ([]Availability, error)
	Delete(ctx context.Context, id, userID uint) error
	FeedJSON(ctx context.Context, userID uint) ([]FeedBlock, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Replace(ctx context.Context, userID uint, inputs []EntryInput) (int, error) {
	entries := make([]Availability, 0, len(inputs))

	for _, in := range inputs {
		if !validClock(in.StartTime) || !validClock(in.EndTime) {
			log.Printf("⚠️ skipping availability row without valid start/end time")
			continue
		}

		avail := true
		if in.IsAvailable != nil {
			avail = *in.IsAvailable
		}

		if in.IsRecurring || in.DayOfWeek != nil {
			if in.DayOfWeek == nil || *in.DayOfWeek < 0 || *in.DayOfWeek > 6 {
				log.Printf("⚠️ skipping recurring availability row without valid day_of_week")
				continue
			}
			entries = append(entries, Availability{
				DayOfWeek:   in.DayOfWeek,
				IsRecurring: true,
				StartTime:   in.StartTime,
				EndTime:     in.EndTime,
				IsAvailable: avail,
				Note:        in.Note,
			})
			continue
		}

		date, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			log.Printf("⚠️ skipping one-off availability row without valid date")
			continue
		}
		entries = append(entries, Availability{
			Date:        &date,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
			IsAvailable: avail,
			Note:        in.Note,
		})
	}

	if err := s.repo.ReplaceAll(ctx, userID, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (s *service) Create(ctx context.Context, userID uint, dateStr, start, end, note string) (*Availability, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, apperr.Validation("invalid date, expected YYYY-MM-DD")
	}
	if !validClock(start) || !validClock(end) {
		return nil, apperr.Validation("invalid time, expected HH:MM")
	}
	if end <= start {
		return nil, apperr.Validation("end time must be after start time")
	}

	a := &Availability{
		UserID:      userID,
		Date:        &date,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
		Note:        note,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, apperr.Wrap(apperr.KindConflict, "availability window already exists", err)
	}
	return a, nil
}

func (s *service) List(ctx context.Context, userID uint) ([]Availability, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Delete(ctx context.Context, id, userID uint) error {
	err := s.repo.Delete(ctx, id, userID)
	if err == gorm.ErrRecordNotFound {
		return apperr.NotFound("availability entry not found")
	}
	return err
}

// FeedBlock is one background block for the calendar widget.
type FeedBlock struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Start           string `json:"start"`
	End             string `json:"end"`
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	Display         string `json:"display"`
}

func (s *service) FeedJSON(ctx context.Context, userID uint) ([]FeedBlock, error) {
	today := time.Now().Truncate(24 * time.Hour)
	items, err := s.repo.ListDatedFrom(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	blocks := make([]FeedBlock, 0, len(items))
	for _, a := range items {
		if a.Date == nil || !a.IsAvailable {
			continue
		}
		day := a.Date.Format("2006-01-02")
		title := "Available"
		if a.Note != "" {
			title = a.Note
		}
		blocks = append(blocks, FeedBlock{
			ID:              a.ID,
			Title:           title,
			Start:           day + "T" + a.StartTime,
			End:             day + "T" + a.EndTime,
			BackgroundColor: "#38bdf8",
			BorderColor:     "#0ea5e9",
			Display:         "background",
		})
	}
	return blocks, nil
}

func validClock(v string) bool {
	if v == "" {
		return false
	}
	_, err := time.Parse("15:04", v)
	return err == nil
}
