package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dvail/trackline/internal/app"
	"github.com/dvail/trackline/internal/config"
	"github.com/dvail/trackline/internal/domain/activity"
	"github.com/dvail/trackline/internal/domain/project"
	"github.com/dvail/trackline/internal/gateway/sqlite"
)

const usage = `usage: trackline <command> [args]

commands:
  whoami                              show the signed-in identity
  open <path>                         resolve a navigation target
  projects list                       list projects, newest first
  projects add <name>                 create a project
  projects rename <id> <name>         rename a project
  projects rm <id>                    delete a project
  activities list [flags]             list activities (see flags below)
  activities add [flags]              create an activity
  activities rm <id>                  delete an activity
  useradd <email> <password> [name]   create a local account (sqlite mode)
  grant-admin <email>                 grant admin rights (sqlite mode)

Credentials are read from TRACKLINE_EMAIL and TRACKLINE_PASSWORD; auth
commands sign in before running.`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	a, err := app.Open(cfg, logger)
	if err != nil {
		logger.Error("failed to open gateway", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx := context.Background()
	if err := run(ctx, a, args); err != nil {
		logger.Error("command failed", "command", args[0], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, args []string) error {
	switch args[0] {
	case "whoami":
		return whoami(ctx, a)
	case "open":
		if len(args) != 2 {
			return fmt.Errorf("usage: trackline open <path>")
		}
		return openRoute(ctx, a, args[1])
	case "projects":
		return projectsCmd(ctx, a, args[1:])
	case "activities":
		return activitiesCmd(ctx, a, args[1:])
	case "useradd":
		return useradd(ctx, a, args[1:])
	case "grant-admin":
		return grantAdmin(ctx, a, args[1:])
	case "help", "-h", "--help":
		fmt.Println(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// signIn authenticates with credentials from the environment. Commands
// that hit guarded tables call it first.
func signIn(ctx context.Context, a *app.App) error {
	email := os.Getenv("TRACKLINE_EMAIL")
	password := os.Getenv("TRACKLINE_PASSWORD")
	if email == "" {
		return fmt.Errorf("TRACKLINE_EMAIL and TRACKLINE_PASSWORD are not set")
	}
	if _, err := a.Auth.SignIn(ctx, email, password); err != nil {
		return err
	}
	return nil
}

func whoami(ctx context.Context, a *app.App) error {
	if err := signIn(ctx, a); err != nil {
		return err
	}
	user := a.Auth.CurrentUser(ctx)
	if user == nil {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", a.Auth.DisplayName(), user.Email, user.ID)
	return nil
}

func openRoute(ctx context.Context, a *app.App, path string) error {
	// Best-effort sign-in so guarded routes can resolve; the guard
	// itself decides where an anonymous navigation lands.
	if os.Getenv("TRACKLINE_EMAIL") != "" {
		if err := signIn(ctx, a); err != nil {
			return err
		}
	}
	final, err := a.Guard.Resolve(ctx, path)
	if err != nil {
		return err
	}
	if final == path {
		fmt.Printf("%s\n", final)
	} else {
		fmt.Printf("%s -> %s\n", path, final)
	}
	return nil
}

func projectsCmd(ctx context.Context, a *app.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: trackline projects <list|add|rename|rm>")
	}
	if err := signIn(ctx, a); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		if err := a.Projects.Fetch(ctx); err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, p := range a.Projects.Projects() {
			fmt.Fprintf(w, "%d\t%s\n", p.ID, p.ProjectName)
		}
		return w.Flush()

	case "add":
		if len(args) != 2 {
			return fmt.Errorf("usage: trackline projects add <name>")
		}
		created, err := a.Projects.Create(ctx, project.Input{ProjectName: args[1]})
		if err != nil {
			return err
		}
		fmt.Printf("created project %d %q\n", created.ID, created.ProjectName)
		return nil

	case "rename":
		if len(args) != 3 {
			return fmt.Errorf("usage: trackline projects rename <id> <name>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := a.Projects.Fetch(ctx); err != nil {
			return err
		}
		updated, err := a.Projects.Update(ctx, id, project.Input{ProjectName: args[2]})
		if err != nil {
			return err
		}
		fmt.Printf("renamed project %d to %q\n", updated.ID, updated.ProjectName)
		return nil

	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: trackline projects rm <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := a.Projects.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("deleted project %d\n", id)
		return nil

	default:
		return fmt.Errorf("unknown projects command %q", args[0])
	}
}

func activitiesCmd(ctx context.Context, a *app.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: trackline activities <list|add|rm>")
	}
	if err := signIn(ctx, a); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("activities list", flag.ContinueOnError)
		projectName := fs.String("project", "", "filter by project name")
		urgency := fs.String("urgency", "", "filter by urgency (High|Medium|Low)")
		assigned := fs.String("assigned", "", "filter by assignment (true|false)")
		sortBy := fs.String("sort", string(activity.SortByCreatedAt), "sort field")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		if err := a.Activities.Fetch(ctx, *projectName); err != nil {
			return err
		}
		field := activity.SortField(*sortBy)
		a.Activities.SetFilters(activity.Patch{
			Urgency:  urgency,
			Assigned: assigned,
			SortBy:   &field,
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPROJECT\tACTIVITY\tPROGRESS\tURGENCY\tASSIGNED TO\tCREATED")
		for _, act := range a.Activities.Filtered() {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				act.ID, act.ProjectName, act.ActivityName, act.Progress,
				act.Urgency, act.AssignedToWho, act.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()

	case "add":
		fs := flag.NewFlagSet("activities add", flag.ContinueOnError)
		projectName := fs.String("project", "", "project name")
		name := fs.String("name", "", "activity name")
		progress := fs.Float64("progress", 0, "progress value")
		expected := fs.Float64("time", 0, "expected time")
		urgency := fs.String("urgency", activity.UrgencyMedium, "urgency (High|Medium|Low)")
		notes := fs.String("notes", "", "notes")
		assignee := fs.String("assigned-to", "", "assignee")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *projectName == "" || *name == "" {
			return fmt.Errorf("-project and -name are required")
		}

		created, err := a.Activities.Create(ctx, activity.Input{
			ProjectName:   *projectName,
			ActivityName:  *name,
			Progress:      activity.ProgressValue(*progress),
			ExpectedTime:  *expected,
			Urgency:       *urgency,
			Notes:         *notes,
			Assigned:      *assignee != "",
			AssignedToWho: *assignee,
			CreatedBy:     a.Auth.DisplayName(),
		})
		if err != nil {
			return err
		}
		fmt.Printf("created activity %d %q\n", created.ID, created.ActivityName)
		return nil

	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: trackline activities rm <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := a.Activities.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("deleted activity %d\n", id)
		return nil

	default:
		return fmt.Errorf("unknown activities command %q", args[0])
	}
}

func useradd(ctx context.Context, a *app.App, args []string) error {
	if a.Local == nil {
		return fmt.Errorf("useradd is only available in sqlite gateway mode")
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("usage: trackline useradd <email> <password> [name]")
	}
	params := sqlite.CreateUserParams{Email: args[0], Password: args[1]}
	if len(args) == 3 {
		params.Name = args[2]
	}
	user, err := a.Local.CreateUser(ctx, params)
	if err != nil {
		return err
	}
	fmt.Printf("created user %s (%s)\n", user.Email, user.ID)
	return nil
}

func grantAdmin(ctx context.Context, a *app.App, args []string) error {
	if a.Local == nil {
		return fmt.Errorf("grant-admin is only available in sqlite gateway mode")
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: trackline grant-admin <email>")
	}
	user, err := a.Local.UserByEmail(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.Local.GrantAdmin(ctx, user.ID); err != nil {
		return err
	}
	fmt.Printf("granted admin to %s\n", user.Email)
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
