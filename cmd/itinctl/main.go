package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"musafir/app"
	"musafir/config"
	"musafir/pkg/export"
	plannerSvc "musafir/pkg/planner/service"
	"musafir/pkg/seed"
)

func main() {
	cliApp := cli.App{
		Name:        "itinctl",
		Description: "turn travel notes into stored trips from the command line",
		Commands: []*cli.Command{{
			Name:        "finalize",
			Description: "build and store a trip from free-text notes",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "text",
					Usage: "the notes themselves",
				},
				&cli.StringFlag{
					Name:  "file",
					Usage: "read the notes from a file ('-' for stdin)",
				},
				&cli.UintFlag{
					Name:  "user",
					Usage: "owner user id",
				},
			},
			Action: withApp(func(a *app.App, ctx *cli.Context) error {
				text, err := notes(ctx)
				if err != nil {
					return err
				}
				var uid *uint
				if ctx.IsSet("user") {
					u := ctx.Uint("user")
					uid = &u
				}
				sess, err := a.Planner.StartSession(ctx.Context, uid)
				if err != nil {
					return err
				}
				res, err := a.Planner.Finalize(ctx.Context, plannerSvc.FinalizeRequest{
					SessionID: sess.SessionID,
					Text:      text,
					UserID:    uid,
				})
				if err != nil {
					return err
				}
				if err := printJSON(res); err != nil {
					return err
				}
				if res.TripID == nil {
					reason := "itinerary could not be extracted"
					if res.ParseError != nil {
						reason = res.ParseError.Reason
					}
					return cli.Exit("no trip stored: "+reason, 2)
				}
				return nil
			}),
		}, {
			Name:        "render",
			Description: "print the markdown document of a stored trip",
			Flags: []cli.Flag{
				&cli.UintFlag{
					Name:     "trip",
					Usage:    "trip id",
					Required: true,
				},
			},
			Action: withApp(func(a *app.App, ctx *cli.Context) error {
				doc, err := a.Trips.RenderDocument(ctx.Context, ctx.Uint("trip"))
				if err != nil {
					return err
				}
				_, err = fmt.Println(doc)
				return err
			}),
		}, {
			Name:        "export",
			Description: "write a stored trip to an xlsx workbook",
			Flags: []cli.Flag{
				&cli.UintFlag{
					Name:     "trip",
					Usage:    "trip id",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "out",
					Usage: "output path. Defaults to a name derived from the trip title.",
				},
			},
			Action: withApp(func(a *app.App, ctx *cli.Context) error {
				v, err := a.Trips.GetTrip(ctx.Context, ctx.Uint("trip"))
				if err != nil {
					return err
				}
				out := ctx.String("out")
				if out == "" {
					out = export.FileName(v.Trip)
				}
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer f.Close()
				if err := export.Write(f, v.Trip, v.Items); err != nil {
					return fmt.Errorf("writing %s: %w", out, err)
				}
				log.WithField("file", out).Info("[export] done")
				return nil
			}),
		}, {
			Name:        "seed",
			Description: "import a place catalogue (csv or xlsx)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "file",
					Usage:    "catalogue path",
					Required: true,
				},
			},
			Action: withApp(func(a *app.App, ctx *cli.Context) error {
				rep, err := seed.LoadFile(ctx.Context, a.Places, ctx.String("file"))
				if err != nil {
					return err
				}
				return printJSON(rep)
			}),
		}},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func withApp(f func(*app.App, *cli.Context) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		// the catalogue is only loaded by the seed command here
		cfg.SeedFile = ""
		app.ConfigureLogging(cfg)
		a, err := app.New(cfg)
		if err != nil {
			return fmt.Errorf("opening app: %w", err)
		}
		defer a.Close()
		return f(a, ctx)
	}
}

func notes(ctx *cli.Context) (string, error) {
	if t := ctx.String("text"); t != "" {
		return t, nil
	}
	switch path := ctx.String("file"); path {
	case "":
		return "", cli.Exit("one of --text or --file is required", 1)
	case "-":
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	default:
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading notes: %w", err)
		}
		return string(b), nil
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling to JSON: %w", err)
	}
	if _, err := fmt.Printf("%s\n", data); err != nil {
		return fmt.Errorf("writing JSON to stdout: %w", err)
	}
	return nil
}
