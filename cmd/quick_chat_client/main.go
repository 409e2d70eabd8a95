// 命令行聊天客户端
// 连接服务器后打印在线列表和收到的消息，stdin 每行 "对端ID 内容" 直发一条消息
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"quick_chat_server/pkg/client"
)

func main() {
	serverURL := flag.String("server", "ws://127.0.0.1:8000/ws", "server websocket url")
	userId := flag.String("user", "", "user id to announce")
	flag.Parse()

	if *userId == "" {
		fmt.Fprintln(os.Stderr, "usage: quick_chat_client -user <userId> [-server ws://host:port/ws]")
		os.Exit(1)
	}

	lg, _ := zap.NewDevelopment()
	zap.ReplaceGlobals(lg)

	c, err := client.New(client.Options{
		ServerURL:     *serverURL,
		UserID:        *userId,
		MaxRetries:    5,
		RetryInterval: 2 * time.Second,
		OnMessage: func(msg client.Message) {
			fmt.Printf("[%s] %s: %s\n", msg.CreatedAt.Format("15:04:05"), msg.SenderId, msg.Text)
		},
		OnOnline: func(users []string) {
			fmt.Printf("online: %v\n", users)
		},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := c.Connect(); err != nil {
		fmt.Fprintln(os.Stderr, "connect failed:", err)
		os.Exit(1)
	}
	defer c.Close()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			fmt.Println("format: <peerId> <text>")
			continue
		}
		if err := c.SendMessage(parts[0], parts[1]); err != nil {
			fmt.Fprintln(os.Stderr, "send failed:", err)
		}
	}
}
