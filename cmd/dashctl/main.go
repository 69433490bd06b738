// dashctl is a small terminal client for the dashboard API. It keeps its
// session in a file under the user's config directory, restores it on start
// and gates commands with the same guards the dashboard uses.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hasan-mia/the-x-tribune-server/internal/authclient"
	"github.com/hasan-mia/the-x-tribune-server/internal/guard"
	"github.com/hasan-mia/the-x-tribune-server/internal/model"
	"github.com/hasan-mia/the-x-tribune-server/internal/permission"
	"github.com/hasan-mia/the-x-tribune-server/internal/session"

	"github.com/akamensky/argparse"
)

func sessionPath() string {
	if p := os.Getenv("DASHCTL_SESSION_FILE"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dashctl-session.json"
	}
	return filepath.Join(home, ".config", "dashctl", "session.json")
}

// cliNavigator translates the guard's navigate-to side effect into a hint on
// stderr. "/login" means the user has to sign in; anything else means the
// account lacks the privilege.
type cliNavigator struct{}

func (cliNavigator) NavigateTo(path string) {
	if path == guard.DefaultLoginPath {
		fmt.Fprintln(os.Stderr, "not signed in, run: dashctl login")
		return
	}
	fmt.Fprintln(os.Stderr, "your account does not have access to this command")
}

func main() {
	parser := argparse.NewParser("dashctl", "Terminal client for the Tribune dashboard")
	serverURL := parser.String("s", "server", &argparse.Options{Help: "Dashboard API base URL", Default: "http://localhost:8080"})

	loginCmd := parser.NewCommand("login", "Sign in and store the session")
	loginEmail := loginCmd.String("e", "email", &argparse.Options{Help: "Account email", Required: true})
	loginPassword := loginCmd.String("p", "password", &argparse.Options{Help: "Account password", Required: true})

	registerCmd := parser.NewCommand("register", "Create an account and store the session")
	regEmail := registerCmd.String("e", "email", &argparse.Options{Help: "Account email", Required: true})
	regPassword := registerCmd.String("p", "password", &argparse.Options{Help: "Account password", Required: true})
	regFirst := registerCmd.String("f", "first-name", &argparse.Options{Help: "First name", Default: ""})
	regLast := registerCmd.String("l", "last-name", &argparse.Options{Help: "Last name", Default: ""})

	logoutCmd := parser.NewCommand("logout", "Clear the stored session")
	whoamiCmd := parser.NewCommand("whoami", "Show the signed-in profile and capabilities")
	usersCmd := parser.NewCommand("users", "List all accounts (admin only)")

	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	store := session.NewStore(session.NewFileBlob(sessionPath()))
	store.Hydrate()

	api := authclient.NewHTTPClient(*serverURL)
	auth := authclient.NewService(store, api, api)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch {
	case loginCmd.Happened():
		user, err := auth.Login(ctx, *loginEmail, *loginPassword)
		if err != nil {
			log.Fatalf("login failed: %v", err)
		}
		fmt.Printf("signed in as %s (%s)\n", user.Email, user.Role.Name)

	case registerCmd.Happened():
		user, err := auth.Register(ctx, authclient.Registration{
			Email:     *regEmail,
			Password:  *regPassword,
			FirstName: *regFirst,
			LastName:  *regLast,
		})
		if err != nil {
			log.Fatalf("registration failed: %v", err)
		}
		fmt.Printf("registered %s, account is %s\n", user.Email, user.Status)

	case logoutCmd.Happened():
		auth.Logout()
		fmt.Println("signed out")

	case whoamiCmd.Happened():
		if guard.NewAuthenticated(store, cliNavigator{}).Check() != guard.Allowed {
			os.Exit(1)
		}
		printProfile(store.User())

	case usersCmd.Happened():
		if guard.NewAdmin(store, cliNavigator{}).Check() != guard.Allowed {
			os.Exit(1)
		}
		if err := listUsers(ctx, *serverURL, store.Token()); err != nil {
			log.Fatalf("listing users failed: %v", err)
		}
	}
}

func printProfile(user *model.User) {
	eval := permission.NewEvaluator(user)
	fmt.Printf("%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	fmt.Printf("role: %s (score %d)\n", user.Role.Name, eval.RoleScore())
	fmt.Printf("admin: %v, super admin: %v\n", eval.IsAdmin(), eval.IsSuperAdmin())
}

func listUsers(ctx context.Context, baseURL, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/v1/users", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	var parsed struct {
		Users []*model.User `json:"users"`
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}

	for _, u := range parsed.Users {
		fmt.Printf("%4d  %-30s  %-12s  %s\n", u.ID, u.Email, u.Status, u.Role.Name)
	}
	return nil
}
