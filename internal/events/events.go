package events

import (
	"encoding/json"
	"fmt"

	"github.com/ButyrinIA/kioteca/internal/models"
)

// Kind - тип события в канале синхронизации
type Kind string

const (
	KindPostNew       Kind = "post:new"
	KindPostComment   Kind = "post:comment"
	KindPostLike      Kind = "post:like"
	KindPostVote      Kind = "post:vote"
	KindGroupNew      Kind = "group:new"
	KindGroupResource Kind = "group:resource"
)

// Event - закрытое множество событий синхронизации. Каждый вариант несет
// полную сущность, а не дельту, чтобы удаленный экземпляр мог применить
// идентичный редьюсер.
type Event interface {
	Kind() Kind
}

type PostNew struct {
	Post models.Post
}

func (PostNew) Kind() Kind { return KindPostNew }

type PostComment struct {
	PostID  string         `json:"postId"`
	Comment models.Comment `json:"comment"`
}

func (PostComment) Kind() Kind { return KindPostComment }

type PostLike struct {
	PostID string `json:"postId"`
	UserID string `json:"userId"`
}

func (PostLike) Kind() Kind { return KindPostLike }

type PostVote struct {
	PostID   string `json:"postId"`
	OptionID string `json:"optionId"`
}

func (PostVote) Kind() Kind { return KindPostVote }

type GroupNew struct {
	Group models.StudyGroup
}

func (GroupNew) Kind() Kind { return KindGroupNew }

type GroupResourceAdded struct {
	GroupID  string               `json:"groupId"`
	Resource models.GroupResource `json:"resource"`
}

func (GroupResourceAdded) Kind() Kind { return KindGroupResource }

// envelope - кадр канала: {type, payload}
type envelope struct {
	Type    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Marshal упаковывает событие в кадр канала
func Marshal(ev Event) ([]byte, error) {
	var payload any
	switch e := ev.(type) {
	case PostNew:
		payload = e.Post
	case GroupNew:
		payload = e.Group
	default:
		payload = ev
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Type: ev.Kind(), Payload: raw})
}

// Unmarshal распаковывает кадр канала в типизированное событие.
// Неизвестный тип - ошибка: диспетчер такие кадры отбрасывает.
func Unmarshal(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("не удалось разобрать кадр: %w", err)
	}

	switch env.Type {
	case KindPostNew:
		var post models.Post
		if err := json.Unmarshal(env.Payload, &post); err != nil {
			return nil, err
		}
		return PostNew{Post: post}, nil
	case KindPostComment:
		var ev PostComment
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case KindPostLike:
		var ev PostLike
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case KindPostVote:
		var ev PostVote
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case KindGroupNew:
		var group models.StudyGroup
		if err := json.Unmarshal(env.Payload, &group); err != nil {
			return nil, err
		}
		return GroupNew{Group: group}, nil
	case KindGroupResource:
		var ev GroupResourceAdded
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	default:
		return nil, fmt.Errorf("неизвестный тип события: %s", env.Type)
	}
}
