package scoreboard

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

func TestRecordCompletion_FirstCompletionIsRecorded(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	store := newFakeStore()
	svc := NewService(store, fixedClock(now))

	entry, improved, err := svc.RecordCompletion(context.Background(), "easy", 95)
	if err != nil {
		t.Fatalf("RecordCompletion returned error: %v", err)
	}
	if !improved {
		t.Fatalf("expected first completion to improve the board")
	}
	if entry.Difficulty != "easy" {
		t.Errorf("expected difficulty easy, got %q", entry.Difficulty)
	}
	if entry.BestSeconds != 95 {
		t.Errorf("expected best seconds 95, got %d", entry.BestSeconds)
	}
	if !entry.AchievedAt.Equal(now) {
		t.Errorf("expected achieved at %v, got %v", now, entry.AchievedAt)
	}

	stored, ok := store.scores["easy"]
	if !ok {
		t.Fatalf("expected store to hold an easy entry")
	}
	if stored != entry {
		t.Errorf("expected stored entry %+v, got %+v", entry, stored)
	}
}

func TestRecordCompletion_FasterTimeReplacesBest(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.scores["medium"] = Entry{
		Difficulty:  "medium",
		BestSeconds: 240,
		AchievedAt:  now.Add(-24 * time.Hour),
	}
	svc := NewService(store, fixedClock(now))

	entry, improved, err := svc.RecordCompletion(context.Background(), "medium", 180)
	if err != nil {
		t.Fatalf("RecordCompletion returned error: %v", err)
	}
	if !improved {
		t.Fatalf("expected faster completion to improve the board")
	}
	if entry.BestSeconds != 180 {
		t.Errorf("expected best seconds 180, got %d", entry.BestSeconds)
	}
	if !entry.AchievedAt.Equal(now) {
		t.Errorf("expected achieved at %v, got %v", now, entry.AchievedAt)
	}
	if store.scores["medium"].BestSeconds != 180 {
		t.Errorf("expected store to hold 180, got %d", store.scores["medium"].BestSeconds)
	}
}

func TestRecordCompletion_SlowerOrEqualKeepsBest(t *testing.T) {
	t.Parallel()

	recorded := Entry{
		Difficulty:  "hard",
		BestSeconds: 300,
		AchievedAt:  time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC),
	}

	testCases := []struct {
		name    string
		seconds int
	}{
		{name: "slower", seconds: 301},
		{name: "equal", seconds: 300},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := newFakeStore()
			store.scores["hard"] = recorded
			svc := NewService(store, fixedClock(time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)))

			entry, improved, err := svc.RecordCompletion(context.Background(), "hard", tc.seconds)
			if err != nil {
				t.Fatalf("RecordCompletion returned error: %v", err)
			}
			if improved {
				t.Fatalf("expected %s completion to keep the recorded best", tc.name)
			}
			if entry != recorded {
				t.Errorf("expected standing entry %+v, got %+v", recorded, entry)
			}
			if store.puts != 0 {
				t.Errorf("expected no store writes, got %d", store.puts)
			}
		})
	}
}

func TestRecordCompletion_ZeroSecondsIsValid(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := NewService(store, fixedClock(time.Date(2024, 6, 4, 7, 0, 0, 0, time.UTC)))

	entry, improved, err := svc.RecordCompletion(context.Background(), "easy", 0)
	if err != nil {
		t.Fatalf("RecordCompletion returned error: %v", err)
	}
	if !improved {
		t.Fatalf("expected instant completion to improve the board")
	}
	if entry.BestSeconds != 0 {
		t.Errorf("expected best seconds 0, got %d", entry.BestSeconds)
	}
}

func TestRecordCompletion_TrimsDifficulty(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := NewService(store, fixedClock(time.Date(2024, 6, 5, 7, 0, 0, 0, time.UTC)))

	entry, _, err := svc.RecordCompletion(context.Background(), "  easy  ", 42)
	if err != nil {
		t.Fatalf("RecordCompletion returned error: %v", err)
	}
	if entry.Difficulty != "easy" {
		t.Errorf("expected trimmed difficulty easy, got %q", entry.Difficulty)
	}
	if _, ok := store.scores["easy"]; !ok {
		t.Errorf("expected store keyed by trimmed difficulty")
	}
}

func TestRecordCompletion_Validation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		service    *Service
		difficulty string
		seconds    int
		wantErr    error
	}{
		{
			name:       "missing store",
			service:    NewService(nil, nil),
			difficulty: "easy",
			seconds:    10,
			wantErr:    ErrStoreNotConfigured,
		},
		{
			name:       "empty difficulty",
			service:    NewService(newFakeStore(), nil),
			difficulty: "",
			seconds:    10,
			wantErr:    ErrDifficultyRequired,
		},
		{
			name:       "blank difficulty",
			service:    NewService(newFakeStore(), nil),
			difficulty: "   ",
			seconds:    10,
			wantErr:    ErrDifficultyRequired,
		},
		{
			name:       "negative seconds",
			service:    NewService(newFakeStore(), nil),
			difficulty: "easy",
			seconds:    -1,
			wantErr:    ErrInvalidDuration,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := tc.service.RecordCompletion(context.Background(), tc.difficulty, tc.seconds)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRecordCompletion_PropagatesStoreErrors(t *testing.T) {
	t.Parallel()

	t.Run("read failure", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore()
		store.getErr = errors.New("disk unreadable")
		svc := NewService(store, nil)

		_, _, err := svc.RecordCompletion(context.Background(), "easy", 10)
		if !errors.Is(err, store.getErr) {
			t.Fatalf("expected read error, got %v", err)
		}
	})

	t.Run("write failure", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore()
		store.putErr = errors.New("disk full")
		svc := NewService(store, nil)

		_, _, err := svc.RecordCompletion(context.Background(), "easy", 10)
		if !errors.Is(err, store.putErr) {
			t.Fatalf("expected write error, got %v", err)
		}
	})
}

func TestBestTime(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.scores["easy"] = Entry{
		Difficulty:  "easy",
		BestSeconds: 88,
		AchievedAt:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	svc := NewService(store, nil)

	entry, ok, err := svc.BestTime(context.Background(), " easy ")
	if err != nil {
		t.Fatalf("BestTime returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected a recorded best time")
	}
	if entry.BestSeconds != 88 {
		t.Errorf("expected best seconds 88, got %d", entry.BestSeconds)
	}
}

func TestBestTime_NoRecordedTime(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeStore(), nil)

	entry, ok, err := svc.BestTime(context.Background(), "hard")
	if err != nil {
		t.Fatalf("BestTime returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected no recorded best time")
	}
	if entry != (Entry{}) {
		t.Errorf("expected zero entry, got %+v", entry)
	}
}

func TestBestTime_Validation(t *testing.T) {
	t.Parallel()

	if _, _, err := NewService(nil, nil).BestTime(context.Background(), "easy"); !errors.Is(err, ErrStoreNotConfigured) {
		t.Fatalf("expected ErrStoreNotConfigured, got %v", err)
	}
	if _, _, err := NewService(newFakeStore(), nil).BestTime(context.Background(), "  "); !errors.Is(err, ErrDifficultyRequired) {
		t.Fatalf("expected ErrDifficultyRequired, got %v", err)
	}
}

func TestBestTimes_ListsEveryDifficulty(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.scores["easy"] = Entry{Difficulty: "easy", BestSeconds: 60}
	store.scores["medium"] = Entry{Difficulty: "medium", BestSeconds: 200}
	svc := NewService(store, nil)

	entries, err := svc.BestTimes(context.Background())
	if err != nil {
		t.Fatalf("BestTimes returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Difficulty != "easy" || entries[1].Difficulty != "medium" {
		t.Errorf("expected entries sorted by difficulty, got %+v", entries)
	}
}

func TestBestTimes_RequiresStore(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil, nil).BestTimes(context.Background()); !errors.Is(err, ErrStoreNotConfigured) {
		t.Fatalf("expected ErrStoreNotConfigured, got %v", err)
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

type fakeStore struct {
	scores map[string]Entry
	puts   int

	getErr error
	putErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{scores: make(map[string]Entry)}
}

func (f *fakeStore) GetScore(_ context.Context, difficulty string) (Entry, error) {
	if f.getErr != nil {
		return Entry{}, f.getErr
	}
	entry, ok := f.scores[difficulty]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

func (f *fakeStore) PutScore(_ context.Context, entry Entry) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.puts++
	f.scores[entry.Difficulty] = entry
	return nil
}

func (f *fakeStore) ListScores(_ context.Context) ([]Entry, error) {
	entries := make([]Entry, 0, len(f.scores))
	for _, entry := range f.scores {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Difficulty < entries[j].Difficulty
	})
	return entries, nil
}
