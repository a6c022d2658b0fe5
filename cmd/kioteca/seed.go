package main

import (
	"github.com/ButyrinIA/kioteca/internal/models"
	"github.com/ButyrinIA/kioteca/internal/state"
)

// пользователи демонстрации; выбираются флагом -user
var demoUsers = map[string]models.User{
	"luis": {
		ID:     "u1",
		Name:   "Luis Hernandez",
		Avatar: "https://picsum.photos/seed/luis/200/200",
		Role:   "student",
	},
	"ana": {
		ID:     "u-ana",
		Name:   "Ana García",
		Avatar: "https://picsum.photos/seed/ana/200/200",
		Role:   "student",
	},
	"bot": {
		ID:     "bot-admin",
		Name:   "Admin Bot",
		Avatar: "https://cdn-icons-png.flaticon.com/512/4712/4712027.png",
		Role:   "admin",
	},
}

// seed наполняет хранилище стартовыми данными ленты и групп
func seed(store *state.Store) {
	store.ApplyPostNew(models.Post{
		ID:   "p2",
		Type: models.PostPoll,
		Author: models.User{
			ID:     "u4",
			Name:   "Juan Perez",
			Avatar: "https://picsum.photos/seed/juan/200/200",
		},
		Content:    "¿Cual es la mejor carrera de la UVEG?",
		Timestamp:  "Hace 5 horas",
		Likes:      12,
		TotalVotes: 40,
		PollOptions: []models.PollOption{
			{ID: "o1", Text: "Educacion Innovadora", Votes: 35},
			{ID: "o2", Text: "Gestion Administrativa", Votes: 4},
			{ID: "o3", Text: "Ingenieria en Sistemas", Votes: 1},
			{ID: "o4", Text: "Ciencias Politicas", Votes: 0},
		},
		Comments: []models.Comment{},
	})

	store.ApplyPostNew(models.Post{
		ID:   "p1",
		Type: models.PostQuestion,
		Author: models.User{
			ID:     "u2",
			Name:   "Elisa Martinez",
			Avatar: "https://picsum.photos/seed/elisa/200/200",
		},
		Content:   "¿Cuando inicia el 3er modulo de Programación Web?",
		Timestamp: "Hace 2 horas",
		Likes:     5,
		Comments: []models.Comment{
			{
				ID:         "c1",
				UserID:     "u1",
				UserName:   "Luis Hernandez",
				UserAvatar: "https://picsum.photos/seed/luis/200/200",
				Content:    "En el portal viene la informacion, creo que el lunes.",
				Timestamp:  "Hace 1 hora",
			},
			{
				ID:         "c2",
				UserID:     "u3",
				UserName:   "Pepe Lopez",
				UserAvatar: "https://picsum.photos/seed/pepe/200/200",
				Content:    "Tengo la misma duda",
				Timestamp:  "Hace 30 min",
			},
		},
	})

	store.AddGroup(models.StudyGroup{
		ID:           "g1",
		Name:         "Matemáticas Discretas",
		Description:  "Grupo para resolver dudas de lógica y conjuntos. ¡Todos son bienvenidos!",
		Category:     "Ingeniería",
		Color:        "bg-gradient-to-br from-blue-500 to-cyan-500",
		TextColor:    "text-white",
		MembersCount: 156,
		IsMember:     true,
		Resources:    []models.GroupResource{},
	})
	store.AddGroup(models.StudyGroup{
		ID:           "g2",
		Name:         "Club de ReactJS",
		Description:  "Compartimos componentes, hooks y buenas prácticas para el desarrollo web.",
		Category:     "Programación",
		Color:        "bg-gradient-to-br from-indigo-600 to-purple-600",
		TextColor:    "text-white",
		MembersCount: 89,
		IsMember:     true,
		Resources:    []models.GroupResource{},
	})
	store.AddGroup(models.StudyGroup{
		ID:           "g3",
		Name:         "English Conversation",
		Description:  "Practice your english skills with us. Meeting every friday.",
		Category:     "Idiomas",
		Color:        "bg-gradient-to-br from-emerald-500 to-teal-500",
		TextColor:    "text-white",
		MembersCount: 340,
		IsMember:     false,
		Resources:    []models.GroupResource{},
	})
}
