package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ButyrinIA/kioteca/internal/bot"
	"github.com/ButyrinIA/kioteca/internal/bus"
	"github.com/ButyrinIA/kioteca/internal/config"
	"github.com/ButyrinIA/kioteca/internal/connectivity"
	"github.com/ButyrinIA/kioteca/internal/feed"
	"github.com/ButyrinIA/kioteca/internal/models"
	"github.com/ButyrinIA/kioteca/internal/notify"
	"github.com/ButyrinIA/kioteca/internal/state"
	"github.com/ButyrinIA/kioteca/internal/transport/ws"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config.yaml", "путь к файлу конфигурации")
	userName := flag.String("user", "luis", "пользователь демонстрации: luis, ana или bot")
	relayURL := flag.String("relay", "", "адрес ретранслятора (переопределяет конфигурацию)")
	flag.Parse()

	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}
	if *relayURL != "" {
		cfg.Relay.URL = *relayURL
	}

	user, ok := demoUsers[strings.ToLower(*userName)]
	if !ok {
		log.Fatalf("Неизвестный пользователь: %s", *userName)
	}

	queue := notify.NewQueue(
		notify.WithTTL(cfg.NotificationTTL()),
		notify.WithOnChange(notificationPrinter()),
	)
	defer queue.Close()

	monitor := connectivity.NewMonitor(false, queue)

	transport, err := ws.Dial(cfg.Relay.URL, monitor.SetOnline)
	if err != nil {
		log.Fatalf("Не удалось подключиться к ретранслятору %s: %v", cfg.Relay.URL, err)
	}
	defer transport.Close()

	eventBus := bus.New(transport)
	defer eventBus.Close()

	store := state.New(user.ID)
	seed(store)

	answerer := bot.New(os.Getenv("GEMINI_API_KEY"), cfg.AI.Model)
	instance := feed.New(user, store, eventBus, queue, monitor, answerer)
	defer instance.Close()

	log.Printf("Экземпляр запущен: %s (%s), канал %q", user.Name, user.ID, cfg.Channel.Name)
	fmt.Println("Команды: feed, groups, post <текст>, ask <вопрос>, poll <тема>|<вар1>|<вар2>..., " +
		"vote <postId> <optionId>, like <postId>, comment <postId> <текст>, " +
		"newgroup <имя>|<описание>|<категория>, join <groupId>, share <groupId> <текст>, " +
		"askgroup <groupId> <вопрос>, quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" {
			return
		}
		runCommand(instance, line)
	}
}

func runCommand(instance *feed.Instance, line string) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "feed":
		for _, p := range instance.Store().Posts() {
			fmt.Printf("[%s] %s — %s (❤ %d, 💬 %d)\n", p.ID, p.Author.Name, p.Content, p.Likes, len(p.Comments))
			if p.Type == models.PostPoll {
				for _, opt := range p.PollOptions {
					fmt.Printf("    %s: %s — %d\n", opt.ID, opt.Text, opt.Votes)
				}
				fmt.Printf("    всего голосов: %d\n", p.TotalVotes)
			}
			for _, c := range p.Comments {
				fmt.Printf("    %s: %s\n", c.UserName, c.Content)
			}
		}
	case "groups":
		for _, g := range instance.Store().Groups() {
			member := ""
			if g.IsMember {
				member = " [участник]"
			}
			fmt.Printf("[%s] %s (%s), участников: %d%s\n", g.ID, g.Name, g.Category, g.MembersCount, member)
			for _, r := range g.Resources {
				fmt.Printf("    %s | %s: %s\n", r.Type, r.Author.Name, r.Content)
			}
		}
	case "post":
		instance.CreatePost(feed.PostInput{Type: models.PostAchievement, Content: rest})
	case "ask":
		instance.CreatePost(feed.PostInput{Type: models.PostQuestion, Content: rest})
	case "poll":
		parts := strings.Split(rest, "|")
		if len(parts) < 3 {
			fmt.Println("нужно: poll <тема>|<вариант1>|<вариант2>...")
			return
		}
		instance.CreatePost(feed.PostInput{
			Type:        models.PostPoll,
			Content:     strings.TrimSpace(parts[0]),
			PollOptions: trimAll(parts[1:]),
		})
	case "vote":
		postID, optionID, _ := strings.Cut(rest, " ")
		if !instance.Vote(postID, strings.TrimSpace(optionID)) {
			fmt.Println("опрос не найден")
		}
	case "like":
		instance.Like(rest)
	case "comment":
		postID, text, _ := strings.Cut(rest, " ")
		if _, ok := instance.Comment(postID, strings.TrimSpace(text)); !ok {
			fmt.Println("пост не найден")
		}
	case "newgroup":
		parts := strings.Split(rest, "|")
		if len(parts) < 3 {
			fmt.Println("нужно: newgroup <имя>|<описание>|<категория>")
			return
		}
		instance.CreateGroup(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2]))
	case "join":
		if !instance.JoinGroup(rest) {
			fmt.Println("группа не найдена или вы уже участник")
		}
	case "share":
		groupID, text, _ := strings.Cut(rest, " ")
		if _, ok := instance.AddGroupResource(groupID, models.ResourceComment, "", strings.TrimSpace(text), ""); !ok {
			fmt.Println("группа не найдена")
		}
	case "askgroup":
		groupID, question, _ := strings.Cut(rest, " ")
		if !instance.AskGroupAI(groupID, strings.TrimSpace(question)) {
			fmt.Println("группа не найдена")
		}
	default:
		fmt.Printf("неизвестная команда: %s\n", cmd)
	}
}

func trimAll(parts []string) []string {
	result := make([]string, len(parts))
	for i, p := range parts {
		result[i] = strings.TrimSpace(p)
	}
	return result
}

// notificationPrinter печатает каждое уведомление один раз
func notificationPrinter() func([]models.Notification) {
	printed := make(map[string]struct{})
	return func(items []models.Notification) {
		for _, n := range items {
			if _, ok := printed[n.ID]; ok {
				continue
			}
			printed[n.ID] = struct{}{}
			fmt.Printf("🔔 [%s] %s: %s\n", n.Type, n.Title, n.Message)
		}
	}
}
