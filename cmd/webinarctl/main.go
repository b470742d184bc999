package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	"github.com/isqad/livelook-webinar/internal/api"
	"github.com/isqad/livelook-webinar/internal/auth"
	"github.com/isqad/livelook-webinar/internal/config"
	"github.com/isqad/livelook-webinar/internal/core"
	"github.com/isqad/livelook-webinar/internal/eventbus"
	"github.com/isqad/livelook-webinar/internal/transport"
	"github.com/isqad/livelook-webinar/internal/webinar"
)

func main() {
	app := &cli.App{
		Name:        "webinarctl",
		Usage:       "Webinar control client",
		Description: "",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "environment: either 'development' or 'production'",
				Value: "development",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to config file",
			},
			&cli.StringFlag{
				Name:  "controlUrl",
				Usage: "base URL for session-level control operations",
			},
			&cli.StringFlag{
				Name:  "webcastUrl",
				Usage: "base URL of the webcast instance",
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: "bearer token for webcast operations",
			},
			&cli.BoolFlag{
				Name:  "verifyToken",
				Usage: "verify the token against the auth service before each call",
			},
			&cli.StringFlag{
				Name:  "locusId",
				Usage: "meeting locus id",
			},
			&cli.StringFlag{
				Name:  "correlationId",
				Usage: "meeting correlation id",
			},
		},
		Before: func(c *cli.Context) error {
			initLogger(core.ParseEnvironment(c.String("env")))
			return config.Init(c.String("config"))
		},
		Commands: []*cli.Command{
			{
				Name:      "practice",
				Usage:     "toggle the practice session",
				ArgsUsage: "on|off",
				Action:    practiceAction,
			},
			{
				Name:  "start",
				Usage: "start the webcast",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "layout",
						Usage: "webcast layout as JSON",
					},
				},
				Action: startAction,
			},
			{
				Name:   "stop",
				Usage:  "stop the webcast",
				Action: stopAction,
			},
			{
				Name:  "layout",
				Usage: "manage the webcast layout",
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Action: layoutShowAction,
					},
					{
						Name: "set",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "layout",
								Usage:    "webcast layout as JSON",
								Required: true,
							},
						},
						Action: layoutSetAction,
					},
				},
			},
			{
				Name:  "attendees",
				Usage: "manage webcast attendees",
				Subcommands: []*cli.Command{
					{
						Name: "search",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "keyword",
								Usage: "search keyword, may be empty",
							},
						},
						Action: attendeesSearchAction,
					},
					{
						Name:      "expel",
						ArgsUsage: "attendee-id",
						Action:    attendeesExpelAction,
					},
				},
			},
			{
				Name:  "watch",
				Usage: "follow the meeting event feed and serve diagnostics",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "meetingId",
						Usage:    "meeting to subscribe to",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "feed",
						Usage: "event feed: 'redis', 'nats' or 'ws'",
						Value: "redis",
					},
					&cli.StringFlag{
						Name:  "feedUrl",
						Usage: "event gateway URL for the 'ws' feed",
					},
				},
				Action: watchAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}

func initLogger(env core.Environment) {
	cw := zerolog.NewConsoleWriter()
	log.Logger = log.Output(cw)

	level := zerolog.InfoLevel
	if env.IsDevelopment() {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)
}

func newSession(c *cli.Context) *core.WebinarSession {
	session := core.NewWebinarSession()
	session.SetControlURL(c.String("controlUrl"))
	session.UpdateWebcastURL(map[string]interface{}{
		"resources": map[string]interface{}{
			"webcastInstance": map[string]interface{}{
				"url": c.String("webcastUrl"),
			},
		},
	})

	return session
}

func newGateway(c *cli.Context, session *core.WebinarSession) *webinar.Gateway {
	var credentials auth.CredentialProvider = auth.Static(c.String("token"))
	if c.Bool("verifyToken") {
		credentials = &auth.VerifyingProvider{
			Addr:     viper.GetString("auth_service.addr"),
			Delegate: credentials,
		}
	}

	return webinar.NewGateway(webinar.GatewayOptions{
		Session:           session,
		Sender:            transport.NewHTTPSender(nil),
		Credentials:       credentials,
		Logger:            log.Logger,
		TrackingNamespace: viper.GetString("app.tracking_namespace"),
	})
}

func printResponse(resp *transport.Response) {
	if resp == nil || len(resp.Body) == 0 {
		return
	}
	fmt.Printf("%s\n", resp.Body)
}

func parseLayout(raw string) (map[string]interface{}, error) {
	if raw == "" {
		return nil, nil
	}

	layout := make(map[string]interface{})
	if err := json.Unmarshal([]byte(raw), &layout); err != nil {
		return nil, err
	}
	return layout, nil
}

func practiceAction(c *cli.Context) error {
	gateway := newGateway(c, newSession(c))

	resp, err := gateway.SetPracticeSessionState(c.Context, c.Args().First() == "on")
	if err != nil {
		return err
	}
	printResponse(resp)

	return nil
}

func startAction(c *cli.Context) error {
	layout, err := parseLayout(c.String("layout"))
	if err != nil {
		return err
	}

	gateway := newGateway(c, newSession(c))
	meeting := webinar.MeetingInfo{
		LocusID:       c.String("locusId"),
		CorrelationID: c.String("correlationId"),
	}

	resp, err := gateway.StartWebcast(c.Context, meeting, layout)
	if err != nil {
		return err
	}
	printResponse(resp)

	return nil
}

func stopAction(c *cli.Context) error {
	gateway := newGateway(c, newSession(c))

	resp, err := gateway.StopWebcast(c.Context)
	if err != nil {
		return err
	}
	printResponse(resp)

	return nil
}

func layoutShowAction(c *cli.Context) error {
	gateway := newGateway(c, newSession(c))

	resp, err := gateway.QueryWebcastLayout(c.Context)
	if err != nil {
		return err
	}
	printResponse(resp)

	return nil
}

func layoutSetAction(c *cli.Context) error {
	layout, err := parseLayout(c.String("layout"))
	if err != nil {
		return err
	}

	gateway := newGateway(c, newSession(c))

	resp, err := gateway.UpdateWebcastLayout(c.Context, layout)
	if err != nil {
		return err
	}
	printResponse(resp)

	return nil
}

func attendeesSearchAction(c *cli.Context) error {
	gateway := newGateway(c, newSession(c))

	resp, err := gateway.SearchWebcastAttendee(c.Context, c.String("keyword"))
	if err != nil {
		return err
	}
	printResponse(resp)

	return nil
}

func attendeesExpelAction(c *cli.Context) error {
	gateway := newGateway(c, newSession(c))

	resp, err := gateway.ExpelWebcastAttendee(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	printResponse(resp)

	return nil
}

func watchAction(c *cli.Context) error {
	session := newSession(c)
	tracker := webinar.NewTracker(session)

	subscriber, disconnect, err := newSubscriber(c)
	if err != nil {
		return err
	}
	defer disconnect()

	router, err := eventbus.NewRouter(subscriber, c.String("meetingId"))
	if err != nil {
		return err
	}

	router.OnRoleChange(func(params eventbus.RoleChangeParams) error {
		transition := tracker.ApplyRoleChange(
			core.RolesFromStrings(params.OldRoles),
			core.RolesFromStrings(params.NewRoles),
		)
		log.Info().
			Bool("promoted", transition.IsPromoted).
			Bool("demoted", transition.IsDemoted).
			Bool("canManageWebcast", session.CanManageWebcast()).
			Msg("role change applied")

		return nil
	})
	router.OnResourceUpdate(func(params map[string]interface{}) error {
		session.UpdateWebcastURL(params)
		log.Debug().Str("webcastUrl", session.WebcastURL()).Msg("resources updated")

		return nil
	})
	router.OnPracticeSessionStatus(func(status core.PracticeSessionStatus) error {
		session.UpdatePracticeSessionStatus(status)

		return nil
	})
	router.OnWebcastStatus(func(params eventbus.WebcastStatusParams) error {
		session.SetStatus(params.Status)

		return nil
	})

	diagnostics := api.NewApp(api.AppOptions{
		Session: session,
		Address: viper.GetString("diagnostics.addr"),
	})
	go func() {
		if err := diagnostics.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("diagnostics server has been closed immediatelly")
		}
	}()

	<-router.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Warn().Msg("received signal to terminate")
	<-router.Stop()

	if err := router.Close(); err != nil {
		log.Error().Err(err).Str("service", "router").Msg("can't close event feed")
	}

	return nil
}

func newSubscriber(c *cli.Context) (eventbus.Subscriber, func(), error) {
	switch c.String("feed") {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr: viper.GetString("redis.addr"),
			DB:   0,
		})
		return eventbus.RedisPubSub(rdb), func() { rdb.Close() }, nil
	case "nats":
		nc, err := nats.Connect(viper.GetString("nats.addr"), nats.NoEcho())
		if err != nil {
			return nil, nil, err
		}
		return eventbus.NatsSource(nc), nc.Close, nil
	case "ws":
		return eventbus.WebsocketSource(c.String("feedUrl")), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown feed: %s", c.String("feed"))
	}
}
