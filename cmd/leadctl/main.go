package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lead_relay/pkg/httpx"
	"lead_relay/pkg/leadform"
	"lead_relay/pkg/logx"
)

func main() {
	var (
		endpoint = flag.String("endpoint", "http://localhost:8080/v1/lead", "адрес сервиса заявок")
		origin   = flag.String("origin", "", "заголовок Origin (страница, с которой отправлена форма)")
		name     = flag.String("name", "", "имя")
		phone    = flag.String("phone", "", "телефон в любом формате")
		company  = flag.String("company", "", "honeypot-поле, у людей пустое")
		query    = flag.String("query", "", "query-строка страницы, например utm_source=ya&utm_medium=cpc")
		wait     = flag.Duration("wait", 2*time.Second, "пауза между открытием формы и отправкой")
		noAgree  = flag.Bool("no-privacy", false, "не подтверждать согласие с политикой")
		verbose  = flag.Bool("v", false, "логировать HTTP-обмен")
	)

	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	level := "warn"
	if *verbose {
		level = "debug"
	}

	log := logx.NewLogger(os.Stderr, "text", level)
	slog.SetDefault(log)

	httpClient := &http.Client{
		Timeout: 15 * time.Second, //nolint:mnd
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		),
	}

	form := leadform.New(*endpoint,
		leadform.WithOrigin(*origin),
		leadform.WithHTTPClient(httpClient),
	)
	form.SetQuery(*query)
	form.Start()

	select {
	case <-time.After(*wait):
	case <-ctx.Done():
		os.Exit(1) //nolint:gocritic
	}

	fmt.Println(leadform.MessageSending) //nolint:forbidigo

	status := form.Submit(ctx, *name, *phone, *company, !*noAgree)

	fmt.Println(status.Message) //nolint:forbidigo

	if !status.OK() {
		os.Exit(1)
	}
}
