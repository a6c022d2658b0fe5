package models

// PostType - вид публикации в ленте
type PostType string

const (
	PostQuestion    PostType = "QUESTION"
	PostPoll        PostType = "POLL"
	PostAchievement PostType = "ACHIEVEMENT"
)

// ResourceType - вид ресурса внутри учебной группы
type ResourceType string

const (
	ResourceLink       ResourceType = "LINK"
	ResourceVideo      ResourceType = "VIDEO"
	ResourceBook       ResourceType = "BOOK"
	ResourceComment    ResourceType = "COMMENT"
	ResourceAIResponse ResourceType = "AI_RESPONSE"
)

// Severity - уровень уведомления
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityAlert   Severity = "alert"
)

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Role   string `json:"role,omitempty"`
	IsBot  bool   `json:"isBot,omitempty"`
}

type Comment struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	UserAvatar string `json:"userAvatar,omitempty"`
	IsBot      bool   `json:"isBot,omitempty"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
}

type PollOption struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

type Post struct {
	ID        string    `json:"id"`
	Type      PostType  `json:"type"`
	Author    User      `json:"author"`
	Content   string    `json:"content"`
	Timestamp string    `json:"timestamp"`
	Comments  []Comment `json:"comments"`
	Likes     int       `json:"likes"`

	// LikedByCurrentUser - локальное состояние экземпляра, не синхронизируется
	LikedByCurrentUser bool `json:"likedByCurrentUser"`

	// Поля опроса (только для Type == PostPoll)
	PollOptions []PollOption `json:"pollOptions,omitempty"`
	TotalVotes  int          `json:"totalVotes,omitempty"`
	HasVoted    bool         `json:"hasVoted,omitempty"`

	// Поле достижения (только для Type == PostAchievement)
	ImageURL string `json:"imageUrl,omitempty"`
}

type GroupResource struct {
	ID        string       `json:"id"`
	Type      ResourceType `json:"type"`
	Title     string       `json:"title,omitempty"`
	Content   string       `json:"content"`
	URL       string       `json:"url,omitempty"`
	Author    User         `json:"author"`
	Timestamp string       `json:"timestamp"`
}

type StudyGroup struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Color        string `json:"color"`
	TextColor    string `json:"textColor"`
	MembersCount int    `json:"membersCount"`

	// IsMember - локальное состояние экземпляра: членство не синхронизируется,
	// синхронизируются только существование группы и ее ресурсы
	IsMember  bool            `json:"isMember"`
	Resources []GroupResource `json:"resources"`
}

type Notification struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Type    Severity `json:"type"`
}
