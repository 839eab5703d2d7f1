package chapter

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codearc/codearc-server/pkg/types"
)

func newChapter(title string, seq int, createdAt time.Time) Chapter {
	ch := Chapter{
		Title:    title,
		VideoURL: "https://cdn.example.com/" + title + ".mp4",
		Sequence: seq,
	}
	ch.ID = uuid.New()
	ch.CreatedAt = createdAt
	return ch
}

func TestSortChaptersTieBreak(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	a := newChapter("a", 2, base)
	b := newChapter("b", 1, base.Add(time.Hour))
	c := newChapter("c", 1, base)
	d := newChapter("d", 1, base)

	chapters := []Chapter{a, b, c, d}
	SortChapters(chapters)

	assert.Equal(t, 1, chapters[0].Sequence)
	assert.Equal(t, "a", chapters[3].Title)

	// c and d share sequence and creation time, so id decides
	wantFirst, wantSecond := c, d
	if d.ID.String() < c.ID.String() {
		wantFirst, wantSecond = d, c
	}
	assert.Equal(t, wantFirst.Title, chapters[0].Title)
	assert.Equal(t, wantSecond.Title, chapters[1].Title)
	assert.Equal(t, "b", chapters[2].Title)
}

func TestBuildViewsStudentLocking(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	first := newChapter("intro", 1, base)
	second := newChapter("basics", 2, base)
	third := newChapter("advanced", 3, base)

	t.Run("nothing completed locks all but the first", func(t *testing.T) {
		views := BuildViews([]Chapter{third, first, second}, map[uuid.UUID]bool{}, types.RoleStudent)
		require.Len(t, views, 3)

		assert.False(t, views[0].IsLocked)
		assert.NotEmpty(t, views[0].VideoURL)
		assert.True(t, views[1].IsLocked)
		assert.Empty(t, views[1].VideoURL)
		assert.True(t, views[2].IsLocked)
		assert.Empty(t, views[2].VideoURL)
	})

	t.Run("completing the predecessor unlocks the next chapter only", func(t *testing.T) {
		completed := map[uuid.UUID]bool{first.ID: true}
		views := BuildViews([]Chapter{first, second, third}, completed, types.RoleStudent)

		assert.True(t, views[0].IsCompleted)
		assert.False(t, views[1].IsLocked)
		assert.NotEmpty(t, views[1].VideoURL)
		assert.True(t, views[2].IsLocked)
	})

	t.Run("skipping a chapter keeps later ones locked", func(t *testing.T) {
		completed := map[uuid.UUID]bool{second.ID: true}
		views := BuildViews([]Chapter{first, second, third}, completed, types.RoleStudent)

		assert.False(t, views[0].IsLocked)
		assert.True(t, views[1].IsLocked)
		assert.False(t, views[2].IsLocked) // predecessor(second) is completed
	})
}

func TestBuildViewsPrivilegedRoles(t *testing.T) {
	base := time.Now().UTC()
	chapters := []Chapter{
		newChapter("one", 1, base),
		newChapter("two", 2, base),
	}

	for _, role := range []types.Role{types.RoleMentor, types.RoleAdmin} {
		views := BuildViews(chapters, map[uuid.UUID]bool{}, role)
		for _, v := range views {
			assert.False(t, v.IsLocked)
			assert.NotEmpty(t, v.VideoURL)
		}
	}
}

func TestBuildViewsEmptyCourse(t *testing.T) {
	views := BuildViews(nil, nil, types.RoleStudent)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}
