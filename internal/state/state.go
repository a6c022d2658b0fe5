package state

import (
	"sync"

	"github.com/ButyrinIA/kioteca/internal/models"
)

// Store - коллекции одного экземпляра (посты и группы) и редьюсеры над
// ними. Каждый экземпляр владеет собственной копией; синхронизация
// делается только потоком событий, поэтому все редьюсеры идемпотентны
// по идентификаторам. Модель только накопительная: добавление в список
// или инкремент счетчика, удалений нет.
type Store struct {
	userID string
	posts  []*models.Post
	groups []*models.StudyGroup
	mu     sync.RWMutex
}

// New создает хранилище для экземпляра с указанным пользователем
func New(userID string) *Store {
	return &Store{userID: userID}
}

// UserID возвращает идентификатор пользователя экземпляра
func (s *Store) UserID() string {
	return s.userID
}

func (s *Store) findPost(id string) *models.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Store) findGroup(id string) *models.StudyGroup {
	for _, g := range s.groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// ApplyPostNew добавляет пост в начало ленты; дубликат по id - no-op
func (s *Store) ApplyPostNew(post models.Post) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findPost(post.ID) != nil {
		return false
	}
	p := post
	s.posts = append([]*models.Post{&p}, s.posts...)
	return true
}

// ApplyPostComment добавляет комментарий к посту. Событие для
// неизвестного поста отбрасывается, дубликат комментария - no-op.
func (s *Store) ApplyPostComment(postID string, comment models.Comment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.findPost(postID)
	if post == nil {
		return false
	}
	for _, c := range post.Comments {
		if c.ID == comment.ID {
			return false
		}
	}
	post.Comments = append(post.Comments, comment)
	return true
}

// ApplyPostLike увеличивает счетчик лайков на единицу. Событие от
// собственного пользователя игнорируется: свой лайк экземпляр уже
// применил оптимистично и не должен посчитать его дважды.
func (s *Store) ApplyPostLike(postID, userID string) bool {
	if userID == s.userID {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.findPost(postID)
	if post == nil {
		return false
	}
	post.Likes++
	return true
}

// ApplyPostVote засчитывает голос в опросе. TotalVotes растет даже если
// optionId не найден - так ведет себя исходный протокол, исправление
// изменило бы наблюдаемые счетчики.
func (s *Store) ApplyPostVote(postID, optionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.findPost(postID)
	if post == nil || post.Type != models.PostPoll || post.PollOptions == nil {
		return false
	}

	post.TotalVotes++
	for i := range post.PollOptions {
		if post.PollOptions[i].ID == optionID {
			post.PollOptions[i].Votes++
			break
		}
	}
	return true
}

// ApplyGroupNew добавляет группу; дубликат по id - no-op. Членство не
// наследуется из события создателя: у получателя IsMember всегда false.
func (s *Store) ApplyGroupNew(group models.StudyGroup) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findGroup(group.ID) != nil {
		return false
	}
	g := group
	g.IsMember = false
	s.groups = append(s.groups, &g)
	return true
}

// ApplyGroupResource добавляет ресурс в группу. Неизвестная группа -
// событие отбрасывается, дубликат ресурса - no-op.
func (s *Store) ApplyGroupResource(groupID string, resource models.GroupResource) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	group := s.findGroup(groupID)
	if group == nil {
		return false
	}
	for _, r := range group.Resources {
		if r.ID == resource.ID {
			return false
		}
	}
	group.Resources = append(group.Resources, resource)
	return true
}

// AddGroup добавляет локально созданную группу с сохранением членства
func (s *Store) AddGroup(group models.StudyGroup) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findGroup(group.ID) != nil {
		return false
	}
	g := group
	s.groups = append(s.groups, &g)
	return true
}

// ToggleLike переключает локальный лайк и возвращает новое состояние.
// Снятие лайка уменьшает счетчик только локально - события "unlike" в
// протоколе нет, поэтому глобальные счетчики могут расходиться.
func (s *Store) ToggleLike(postID string) (liked, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.findPost(postID)
	if post == nil {
		return false, false
	}
	if post.LikedByCurrentUser {
		post.Likes--
	} else {
		post.Likes++
	}
	post.LikedByCurrentUser = !post.LikedByCurrentUser
	return post.LikedByCurrentUser, true
}

// MarkVoted отмечает, что пользователь экземпляра проголосовал
func (s *Store) MarkVoted(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post := s.findPost(postID); post != nil {
		post.HasVoted = true
	}
}

// JoinGroup отмечает локальное членство; событие наружу не уходит
func (s *Store) JoinGroup(groupID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	group := s.findGroup(groupID)
	if group == nil || group.IsMember {
		return false
	}
	group.IsMember = true
	group.MembersCount++
	return true
}

// Post возвращает копию поста по id
func (s *Store) Post(id string) (models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post := s.findPost(id)
	if post == nil {
		return models.Post{}, false
	}
	return copyPost(post), true
}

// Group возвращает копию группы по id
func (s *Store) Group(id string) (models.StudyGroup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group := s.findGroup(id)
	if group == nil {
		return models.StudyGroup{}, false
	}
	return copyGroup(group), true
}

// Posts возвращает копию ленты в текущем порядке (новые первыми)
func (s *Store) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Post, len(s.posts))
	for i, p := range s.posts {
		result[i] = copyPost(p)
	}
	return result
}

// Groups возвращает копию списка групп
func (s *Store) Groups() []models.StudyGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.StudyGroup, len(s.groups))
	for i, g := range s.groups {
		result[i] = copyGroup(g)
	}
	return result
}

func copyPost(p *models.Post) models.Post {
	cp := *p
	cp.Comments = append([]models.Comment(nil), p.Comments...)
	if p.PollOptions != nil {
		cp.PollOptions = append([]models.PollOption(nil), p.PollOptions...)
	}
	return cp
}

func copyGroup(g *models.StudyGroup) models.StudyGroup {
	cp := *g
	cp.Resources = append([]models.GroupResource(nil), g.Resources...)
	return cp
}
