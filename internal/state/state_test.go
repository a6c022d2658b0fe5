package state

import (
	"testing"

	"github.com/ButyrinIA/kioteca/internal/models"
	"github.com/stretchr/testify/assert"
)

func pollPost(id string) models.Post {
	return models.Post{
		ID:      id,
		Type:    models.PostPoll,
		Author:  models.User{ID: "u2", Name: "Elisa"},
		Content: "¿Mejor opción?",
		PollOptions: []models.PollOption{
			{ID: "optA", Text: "A"},
			{ID: "optB", Text: "B"},
		},
	}
}

func TestStore(t *testing.T) {
	t.Run("ApplyPostNew Idempotent", func(t *testing.T) {
		store := New("u1")
		post := models.Post{ID: "p99", Type: models.PostQuestion, Content: "duda"}

		assert.True(t, store.ApplyPostNew(post), "Первое применение должно пройти")
		assert.False(t, store.ApplyPostNew(post), "Повторное применение должно быть no-op")
		assert.Len(t, store.Posts(), 1, "Ожидался ровно один пост p99")
	})

	t.Run("ApplyPostNew Prepends", func(t *testing.T) {
		store := New("u1")
		store.ApplyPostNew(models.Post{ID: "p1"})
		store.ApplyPostNew(models.Post{ID: "p2"})

		posts := store.Posts()
		assert.Equal(t, "p2", posts[0].ID, "Новый пост должен быть первым")
		assert.Equal(t, "p1", posts[1].ID)
	})

	t.Run("ApplyPostComment", func(t *testing.T) {
		store := New("u1")
		store.ApplyPostNew(models.Post{ID: "p1"})
		comment := models.Comment{ID: "c1", UserID: "u2", Content: "hola"}

		assert.True(t, store.ApplyPostComment("p1", comment))
		assert.False(t, store.ApplyPostComment("p1", comment), "Дубликат комментария должен быть no-op")

		post, ok := store.Post("p1")
		assert.True(t, ok)
		assert.Len(t, post.Comments, 1)
	})

	t.Run("ApplyPostComment Unknown Post", func(t *testing.T) {
		store := New("u1")
		store.ApplyPostNew(models.Post{ID: "p1"})
		before := store.Posts()

		assert.False(t, store.ApplyPostComment("missing", models.Comment{ID: "c1"}),
			"Событие для неизвестного поста должно отбрасываться")
		assert.Equal(t, before, store.Posts(), "Существующие посты не должны меняться")
	})

	t.Run("ApplyPostLike", func(t *testing.T) {
		store := New("u1")
		store.ApplyPostNew(models.Post{ID: "p1", Likes: 5})

		assert.True(t, store.ApplyPostLike("p1", "u2"))
		post, _ := store.Post("p1")
		assert.Equal(t, 6, post.Likes)
		assert.False(t, post.LikedByCurrentUser, "Чужой лайк не трогает локальный флаг")
	})

	t.Run("ApplyPostLike Self Suppression", func(t *testing.T) {
		store := New("u1")
		store.ApplyPostNew(models.Post{ID: "p1", Likes: 5})

		assert.False(t, store.ApplyPostLike("p1", "u1"), "Собственное эхо должно игнорироваться")
		post, _ := store.Post("p1")
		assert.Equal(t, 5, post.Likes, "Счетчик не должен удваивать свой лайк")
	})

	t.Run("ApplyPostVote Scenario", func(t *testing.T) {
		store := New("u1")
		store.ApplyPostNew(pollPost("p1"))

		assert.True(t, store.ApplyPostVote("p1", "optA"))

		post, _ := store.Post("p1")
		assert.Equal(t, 1, post.TotalVotes)
		assert.Equal(t, 1, post.PollOptions[0].Votes, "optA должен получить голос")
		assert.Equal(t, 0, post.PollOptions[1].Votes, "optB должен остаться без голосов")
	})

	t.Run("ApplyPostVote Commutative", func(t *testing.T) {
		votes := []string{"optA", "optB", "optA", "optA", "optB"}
		permutations := [][]int{
			{0, 1, 2, 3, 4},
			{4, 3, 2, 1, 0},
			{2, 0, 4, 1, 3},
		}

		for _, perm := range permutations {
			store := New("u1")
			store.ApplyPostNew(pollPost("p1"))
			for _, idx := range perm {
				store.ApplyPostVote("p1", votes[idx])
			}

			post, _ := store.Post("p1")
			assert.Equal(t, 5, post.TotalVotes, "Итог не должен зависеть от порядка")
			assert.Equal(t, 3, post.PollOptions[0].Votes)
			assert.Equal(t, 2, post.PollOptions[1].Votes)
		}
	})

	t.Run("ApplyPostVote Unknown Option", func(t *testing.T) {
		store := New("u1")
		store.ApplyPostNew(pollPost("p1"))

		// известная особенность протокола: TotalVotes растет даже без
		// совпадения варианта
		assert.True(t, store.ApplyPostVote("p1", "missing"))
		post, _ := store.Post("p1")
		assert.Equal(t, 1, post.TotalVotes)
		assert.Equal(t, 0, post.PollOptions[0].Votes)
		assert.Equal(t, 0, post.PollOptions[1].Votes)
	})

	t.Run("ApplyPostVote Not A Poll", func(t *testing.T) {
		store := New("u1")
		store.ApplyPostNew(models.Post{ID: "p1", Type: models.PostQuestion})

		assert.False(t, store.ApplyPostVote("p1", "optA"), "Голос не в опрос должен отбрасываться")
		assert.False(t, store.ApplyPostVote("missing", "optA"))
	})

	t.Run("ApplyGroupNew Forces Membership Off", func(t *testing.T) {
		store := New("u1")
		group := models.StudyGroup{ID: "g1", Name: "Matemáticas", IsMember: true, MembersCount: 1}

		assert.True(t, store.ApplyGroupNew(group))
		assert.False(t, store.ApplyGroupNew(group), "Дубликат группы должен быть no-op")

		got, ok := store.Group("g1")
		assert.True(t, ok)
		assert.False(t, got.IsMember, "Членство создателя не наследуется получателем")
	})

	t.Run("ApplyGroupResource", func(t *testing.T) {
		store := New("u1")
		store.AddGroup(models.StudyGroup{ID: "g1"})
		resource := models.GroupResource{ID: "r1", Type: models.ResourceLink, Content: "apuntes"}

		assert.True(t, store.ApplyGroupResource("g1", resource))
		assert.False(t, store.ApplyGroupResource("g1", resource), "Дубликат ресурса должен быть no-op")
		assert.False(t, store.ApplyGroupResource("missing", resource))

		group, _ := store.Group("g1")
		assert.Len(t, group.Resources, 1)
	})

	t.Run("ToggleLike", func(t *testing.T) {
		store := New("u1")
		store.ApplyPostNew(models.Post{ID: "p1", Likes: 5})

		liked, ok := store.ToggleLike("p1")
		assert.True(t, ok)
		assert.True(t, liked)
		post, _ := store.Post("p1")
		assert.Equal(t, 6, post.Likes)
		assert.True(t, post.LikedByCurrentUser)

		liked, ok = store.ToggleLike("p1")
		assert.True(t, ok)
		assert.False(t, liked, "Повторный вызов снимает лайк")
		post, _ = store.Post("p1")
		assert.Equal(t, 5, post.Likes)

		_, ok = store.ToggleLike("missing")
		assert.False(t, ok)
	})

	t.Run("JoinGroup", func(t *testing.T) {
		store := New("u1")
		store.ApplyGroupNew(models.StudyGroup{ID: "g1", MembersCount: 10})

		assert.True(t, store.JoinGroup("g1"))
		group, _ := store.Group("g1")
		assert.True(t, group.IsMember)
		assert.Equal(t, 11, group.MembersCount)

		assert.False(t, store.JoinGroup("g1"), "Повторное вступление - no-op")
		assert.False(t, store.JoinGroup("missing"))
	})

	t.Run("Snapshots Are Copies", func(t *testing.T) {
		store := New("u1")
		store.ApplyPostNew(pollPost("p1"))

		posts := store.Posts()
		posts[0].PollOptions[0].Votes = 100
		posts[0].Likes = 100

		post, _ := store.Post("p1")
		assert.Equal(t, 0, post.PollOptions[0].Votes, "Изменение копии не должно влиять на хранилище")
		assert.Equal(t, 0, post.Likes)
	})
}
