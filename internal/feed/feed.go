package feed

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ButyrinIA/kioteca/internal/bot"
	"github.com/ButyrinIA/kioteca/internal/bus"
	"github.com/ButyrinIA/kioteca/internal/connectivity"
	"github.com/ButyrinIA/kioteca/internal/events"
	"github.com/ButyrinIA/kioteca/internal/models"
	"github.com/ButyrinIA/kioteca/internal/notify"
	"github.com/ButyrinIA/kioteca/internal/state"
	"github.com/google/uuid"
)

// BotUser - автор синтетических ответов ИИ
var BotUser = models.User{
	ID:     "bot-uveg",
	Name:   "Kioteca Bot (IA)",
	Avatar: "https://cdn-icons-png.flaticon.com/512/4712/4712027.png",
	Role:   "admin",
	IsBot:  true,
}

// Instance - один экземпляр приложения: командные обработчики поверх
// общего состояния. Каждое действие пользователя проходит две фазы:
// локальный коммит через тот же редьюсер, что применяет удаленные
// события, затем публикация полной сущности в шину для остальных
// экземпляров.
type Instance struct {
	user     models.User
	store    *state.Store
	bus      *bus.Bus
	queue    *notify.Queue
	monitor  *connectivity.Monitor
	answerer bot.Answerer

	subs []*bus.Subscription
	wg   sync.WaitGroup
}

// PostInput - параметры создания публикации
type PostInput struct {
	Type    models.PostType
	Content string

	// PollOptions - варианты опроса (только для PostPoll)
	PollOptions []string

	// WithImage добавляет сгенерированную картинку (только для PostAchievement)
	WithImage bool
}

// New создает экземпляр и подписывает его на удаленные события.
// Подписки снимаются в Close той же идентичностью регистрации.
func New(user models.User, store *state.Store, b *bus.Bus, queue *notify.Queue, monitor *connectivity.Monitor, answerer bot.Answerer) *Instance {
	i := &Instance{
		user:     user,
		store:    store,
		bus:      b,
		queue:    queue,
		monitor:  monitor,
		answerer: answerer,
	}

	i.subs = []*bus.Subscription{
		b.Subscribe(events.KindPostNew, i.onRemotePostNew),
		b.Subscribe(events.KindPostComment, i.onRemotePostComment),
		b.Subscribe(events.KindPostLike, i.onRemotePostLike),
		b.Subscribe(events.KindPostVote, i.onRemotePostVote),
		b.Subscribe(events.KindGroupNew, i.onRemoteGroupNew),
		b.Subscribe(events.KindGroupResource, i.onRemoteGroupResource),
	}

	return i
}

// User возвращает пользователя экземпляра
func (i *Instance) User() models.User {
	return i.user
}

// Store возвращает состояние экземпляра
func (i *Instance) Store() *state.Store {
	return i.store
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func now() string {
	return time.Now().Format(time.RFC3339)
}

// CreatePost создает публикацию: локальный коммит, рассылка, для
// вопросов - обращение к ИИ. Ответ бота проходит тот же путь
// коммит+рассылка, что и пользовательский контент.
func (i *Instance) CreatePost(input PostInput) models.Post {
	post := models.Post{
		ID:        newID(),
		Type:      input.Type,
		Author:    i.user,
		Content:   input.Content,
		Timestamp: now(),
		Comments:  []models.Comment{},
	}

	switch input.Type {
	case models.PostPoll:
		post.PollOptions = make([]models.PollOption, len(input.PollOptions))
		for idx, text := range input.PollOptions {
			post.PollOptions[idx] = models.PollOption{
				ID:   fmt.Sprintf("opt-%d", idx),
				Text: text,
			}
		}
	case models.PostAchievement:
		if input.WithImage {
			post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/400", post.ID)
		}
	}

	i.store.ApplyPostNew(post)
	i.bus.Publish(events.PostNew{Post: post})
	i.queue.Push("Publicado con éxito", "Tu publicación ya es visible para todos.", models.SeveritySuccess)

	if input.Type == models.PostQuestion {
		i.askBotForPost(post.ID, input.Content)
	}

	return post
}

func (i *Instance) askBotForPost(postID, question string) {
	if !i.monitor.Online() {
		i.queue.Push("IA no disponible", "Conéctate a internet para recibir respuesta de la IA.", models.SeverityAlert)
		return
	}

	i.wg.Add(1)
	go func() {
		defer i.wg.Done()

		// вызов не отменяется при закрытии экземпляра: поздний ответ
		// все равно коммитится и рассылается
		answer, err := i.answerer.Ask(context.Background(), question)
		if err != nil {
			log.Printf("feed: бот не ответил на вопрос: %v", err)
			return
		}

		comment := models.Comment{
			ID:         newID(),
			UserID:     BotUser.ID,
			UserName:   BotUser.Name,
			UserAvatar: BotUser.Avatar,
			IsBot:      true,
			Content:    answer,
			Timestamp:  now(),
		}
		i.store.ApplyPostComment(postID, comment)
		i.bus.Publish(events.PostComment{PostID: postID, Comment: comment})
		i.queue.Push("Kioteca Bot respondió", "La IA ha respondido a tu duda.", models.SeverityInfo)
	}()
}

// Comment добавляет комментарий пользователя к посту
func (i *Instance) Comment(postID, text string) (models.Comment, bool) {
	comment := models.Comment{
		ID:         newID(),
		UserID:     i.user.ID,
		UserName:   i.user.Name,
		UserAvatar: i.user.Avatar,
		Content:    text,
		Timestamp:  now(),
	}

	if !i.store.ApplyPostComment(postID, comment) {
		return models.Comment{}, false
	}
	i.bus.Publish(events.PostComment{PostID: postID, Comment: comment})
	return comment, true
}

// Vote засчитывает голос пользователя в опросе
func (i *Instance) Vote(postID, optionID string) bool {
	if !i.store.ApplyPostVote(postID, optionID) {
		return false
	}
	i.store.MarkVoted(postID)
	i.bus.Publish(events.PostVote{PostID: postID, OptionID: optionID})
	i.queue.Push("Voto Registrado", "Gracias por participar en la encuesta.", models.SeveritySuccess)
	return true
}

// Like переключает лайк. Рассылается только установка лайка: события
// снятия в протоколе нет, удаленные счетчики про него не узнают.
func (i *Instance) Like(postID string) bool {
	liked, ok := i.store.ToggleLike(postID)
	if !ok {
		return false
	}
	if liked {
		i.bus.Publish(events.PostLike{PostID: postID, UserID: i.user.ID})
	}
	return liked
}

// CreateGroup создает учебную группу с создателем в роли участника
func (i *Instance) CreateGroup(name, description, category string) models.StudyGroup {
	group := models.StudyGroup{
		ID:           newID(),
		Name:         name,
		Description:  description,
		Category:     category,
		Color:        "bg-gradient-to-br from-pink-500 to-rose-500",
		TextColor:    "text-white",
		MembersCount: 1,
		IsMember:     true,
		Resources:    []models.GroupResource{},
	}

	i.store.AddGroup(group)
	i.bus.Publish(events.GroupNew{Group: group})
	i.queue.Push("Grupo Creado", "Tu grupo de estudio ha sido creado.", models.SeveritySuccess)

	return group
}

// JoinGroup отмечает членство. Членство - локальное состояние
// экземпляра и наружу не рассылается.
func (i *Instance) JoinGroup(groupID string) bool {
	if !i.store.JoinGroup(groupID) {
		return false
	}
	i.queue.Push("Grupo unido", "Ahora eres miembro de este grupo de estudio.", models.SeveritySuccess)
	return true
}

// AddGroupResource добавляет ресурс от имени пользователя экземпляра
func (i *Instance) AddGroupResource(groupID string, rtype models.ResourceType, title, content, url string) (models.GroupResource, bool) {
	resource := models.GroupResource{
		ID:        newID(),
		Type:      rtype,
		Title:     title,
		Content:   content,
		URL:       url,
		Author:    i.user,
		Timestamp: now(),
	}
	if !i.commitResource(groupID, resource) {
		return models.GroupResource{}, false
	}
	return resource, true
}

// commitResource - общий путь коммит+рассылка для ресурсов группы.
// Ответы ИИ не поднимают уведомление об отправке.
func (i *Instance) commitResource(groupID string, resource models.GroupResource) bool {
	if !i.store.ApplyGroupResource(groupID, resource) {
		return false
	}
	i.bus.Publish(events.GroupResourceAdded{GroupID: groupID, Resource: resource})
	if resource.Type != models.ResourceAIResponse {
		i.queue.Push("Mensaje enviado", "Tu mensaje ha sido enviado al grupo.", models.SeveritySuccess)
	}
	return true
}

// AskGroupAI публикует вопрос пользователя в группе и запрашивает ответ
// ИИ с контекстом группы
func (i *Instance) AskGroupAI(groupID, query string) bool {
	question := models.GroupResource{
		ID:        newID(),
		Type:      models.ResourceComment,
		Content:   fmt.Sprintf("❓ Pregunta a la IA: %s", query),
		Author:    i.user,
		Timestamp: now(),
	}
	if !i.commitResource(groupID, question) {
		return false
	}

	if !i.monitor.Online() {
		i.queue.Push("Offline", "La IA necesita internet para responder.", models.SeverityAlert)
		return true
	}

	group, _ := i.store.Group(groupID)
	prompt := fmt.Sprintf("Contexto: Estoy en un grupo de estudio sobre %q. %s", group.Name, query)

	i.wg.Add(1)
	go func() {
		defer i.wg.Done()

		answer, err := i.answerer.Ask(context.Background(), prompt)
		if err != nil {
			log.Printf("feed: бот не ответил в группе: %v", err)
			return
		}

		i.commitResource(groupID, models.GroupResource{
			ID:        newID(),
			Type:      models.ResourceAIResponse,
			Content:   answer,
			Author:    BotUser,
			Timestamp: now(),
		})
	}()

	return true
}

// --- обработчики удаленных событий ---

func (i *Instance) onRemotePostNew(ev events.Event) {
	e, ok := ev.(events.PostNew)
	if !ok {
		return
	}
	if i.store.ApplyPostNew(e.Post) {
		i.queue.Push("Nueva Publicación", fmt.Sprintf("%s ha publicado algo nuevo.", e.Post.Author.Name), models.SeverityInfo)
	}
}

func (i *Instance) onRemotePostComment(ev events.Event) {
	if e, ok := ev.(events.PostComment); ok {
		i.store.ApplyPostComment(e.PostID, e.Comment)
	}
}

func (i *Instance) onRemotePostLike(ev events.Event) {
	if e, ok := ev.(events.PostLike); ok {
		i.store.ApplyPostLike(e.PostID, e.UserID)
	}
}

func (i *Instance) onRemotePostVote(ev events.Event) {
	if e, ok := ev.(events.PostVote); ok {
		i.store.ApplyPostVote(e.PostID, e.OptionID)
	}
}

func (i *Instance) onRemoteGroupNew(ev events.Event) {
	e, ok := ev.(events.GroupNew)
	if !ok {
		return
	}
	if i.store.ApplyGroupNew(e.Group) {
		i.queue.Push("Nuevo Grupo", fmt.Sprintf("Se ha creado el grupo %q.", e.Group.Name), models.SeverityInfo)
	}
}

func (i *Instance) onRemoteGroupResource(ev events.Event) {
	if e, ok := ev.(events.GroupResourceAdded); ok {
		i.store.ApplyGroupResource(e.GroupID, e.Resource)
	}
}

// Wait дожидается завершения запущенных обращений к ИИ
func (i *Instance) Wait() {
	i.wg.Wait()
}

// Close снимает подписки экземпляра и дожидается обращений к ИИ
func (i *Instance) Close() {
	for _, sub := range i.subs {
		i.bus.Unsubscribe(sub)
	}
	i.subs = nil
	i.wg.Wait()
}
