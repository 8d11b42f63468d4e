package likes

import (
	"context"
	"errors"
	"testing"

	"musiclib/internal/models"
	"musiclib/internal/store/storetest"
)

func TestToggleWithoutActionFlips(t *testing.T) {
	mem := storetest.NewMemory()
	svc := New(mem)
	req := ToggleRequest{Song: models.SongInput{Title: "S", Artist: "A"}}

	want := []bool{true, false, true}
	for i, w := range want {
		liked, err := svc.Toggle(context.Background(), req)
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if liked != w {
			t.Fatalf("toggle %d: expected liked=%v, got %v", i, w, liked)
		}
	}

	likes, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(likes) != 1 || likes[0].UserID != models.DefaultUserID {
		t.Fatalf("expected one guest like, got %+v", likes)
	}
}

func TestToggleTransitions(t *testing.T) {
	tests := []struct {
		name       string
		seeded     bool
		action     string
		wantLiked  bool
		wantAdds   int
		wantRemove int
	}{
		{name: "like when absent", action: "like", wantLiked: true, wantAdds: 1},
		{name: "like when present", seeded: true, action: "like", wantLiked: true, wantAdds: 1},
		{name: "unlike when present", seeded: true, action: "unlike", wantLiked: false, wantRemove: 1},
		{name: "unlike when absent", action: "unlike", wantLiked: false, wantRemove: 1},
		{name: "mixed case action", action: "LIKE", wantLiked: true, wantAdds: 1},
		{name: "unknown action when present", seeded: true, action: "bookmark", wantLiked: true},
		{name: "unknown action when absent", action: "bookmark", wantLiked: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			mem := storetest.NewMemory()
			song := models.SongInput{Title: "S", Artist: "A"}
			if tc.seeded {
				if _, err := mem.AddLikedSong(ctx, "u1", song); err != nil {
					t.Fatalf("seed: %v", err)
				}
			}
			seedAdds := mem.Calls("AddLikedSong")

			liked, err := New(mem).Toggle(ctx, ToggleRequest{UserID: "u1", Action: tc.action, Song: song})
			if err != nil {
				t.Fatalf("Toggle: %v", err)
			}
			if liked != tc.wantLiked {
				t.Fatalf("expected liked=%v, got %v", tc.wantLiked, liked)
			}
			if got := mem.Calls("AddLikedSong") - seedAdds; got != tc.wantAdds {
				t.Fatalf("expected %d inserts, got %d", tc.wantAdds, got)
			}
			if got := mem.Calls("RemoveLikedSong"); got != tc.wantRemove {
				t.Fatalf("expected %d deletes, got %d", tc.wantRemove, got)
			}
			exists, _ := mem.IsLikedSong(ctx, "u1", "S", "A")
			if exists != tc.wantLiked {
				t.Fatalf("stored state %v does not match reported %v", exists, tc.wantLiked)
			}
		})
	}
}

func TestToggleExplicitLikeIsIdempotent(t *testing.T) {
	mem := storetest.NewMemory()
	svc := New(mem)
	req := ToggleRequest{UserID: "guest", Action: "like", Song: models.SongInput{Title: "S", Artist: "A"}}

	for i := 0; i < 2; i++ {
		liked, err := svc.Toggle(context.Background(), req)
		if err != nil || !liked {
			t.Fatalf("attempt %d: expected liked, got %v (%v)", i, liked, err)
		}
	}
	likes, _ := svc.List(context.Background(), "guest")
	if len(likes) != 1 {
		t.Fatalf("expected exactly one like row, got %d", len(likes))
	}
}

func TestToggleRejectsBlankSongWithoutStorage(t *testing.T) {
	mem := storetest.NewMemory()

	_, err := New(mem).Toggle(context.Background(), ToggleRequest{Song: models.SongInput{Title: "  ", Artist: "A"}})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if mem.TotalCalls() != 0 {
		t.Fatalf("expected no storage calls, got %d", mem.TotalCalls())
	}
}

func TestToggleSurfacesMutationFailure(t *testing.T) {
	mem := storetest.NewMemory()
	boom := errors.New("disk full")
	mem.Fail("AddLikedSong", boom)

	liked, err := New(mem).Toggle(context.Background(), ToggleRequest{Song: models.SongInput{Title: "S", Artist: "A"}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if liked {
		t.Fatalf("failed mutation must not report liked")
	}
}
