// Command tally-console is a standalone, in-memory walkthrough of the todo
// core. It runs the same account and todo services as the server against the
// memory stores; everything is lost on exit.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"tally/internal/account"
	"tally/internal/identity"
	"tally/internal/session"
	"tally/internal/todo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	sessCfg := session.DefaultConfig()
	sessCfg.Secret = []byte("console-demo-secret-not-for-production!!")
	codec, err := session.NewCodec(sessCfg)
	if err != nil {
		return err
	}

	users := identity.NewMemoryStore()
	accounts, err := account.NewService(users, codec)
	if err != nil {
		return err
	}
	todos, err := todo.NewService(todo.NewMemoryStore())
	if err != nil {
		return err
	}
	resolver := session.NewResolver(codec, users)

	in := bufio.NewScanner(os.Stdin)

	fmt.Println("tally console (in-memory demo)")
	user, token, err := signup(ctx, accounts, in)
	if err != nil {
		return err
	}
	fmt.Printf("signed up as %s <%s>\n", user.FullName, user.Email)

	for {
		fmt.Print("\n[a]dd  [l]ist  [t]oggle  [d]elete  [q]uit > ")
		if !in.Scan() {
			return nil
		}

		// Re-resolve each loop: the principal flows from the token, exactly
		// as it does over HTTP.
		principal, err := resolver.Resolve(ctx, token)
		if err != nil {
			return err
		}

		switch strings.TrimSpace(in.Text()) {
		case "a":
			fmt.Print("title: ")
			if !in.Scan() {
				return nil
			}
			t, err := todos.Create(ctx, principal, in.Text())
			if err != nil {
				fmt.Println("!", err)
				continue
			}
			fmt.Printf("created %s\n", t.ID)
		case "l":
			items, err := todos.List(ctx, principal)
			if err != nil {
				fmt.Println("!", err)
				continue
			}
			if len(items) == 0 {
				fmt.Println("(no todos yet)")
			}
			for _, t := range items {
				mark := " "
				if t.Completed {
					mark = "x"
				}
				fmt.Printf("[%s] %s  %s  (%s)\n", mark, t.ID, t.Title, t.CreatedAt.Format(time.RFC3339))
			}
		case "t":
			fmt.Print("id: ")
			if !in.Scan() {
				return nil
			}
			id := strings.TrimSpace(in.Text())
			cur, err := todos.Get(ctx, principal, id)
			if err != nil {
				fmt.Println("!", err)
				continue
			}
			done := !cur.Completed
			if _, err := todos.Update(ctx, principal, id, todo.UpdateInput{Completed: &done}); err != nil {
				fmt.Println("!", err)
				continue
			}
			fmt.Println("toggled")
		case "d":
			fmt.Print("id: ")
			if !in.Scan() {
				return nil
			}
			if err := todos.Delete(ctx, principal, strings.TrimSpace(in.Text())); err != nil {
				fmt.Println("!", err)
				continue
			}
			fmt.Println("deleted")
		case "q":
			fmt.Println("bye")
			return nil
		}
	}
}

func signup(ctx context.Context, accounts *account.Service, in *bufio.Scanner) (identity.PublicUser, string, error) {
	for {
		fmt.Print("name: ")
		if !in.Scan() {
			return identity.PublicUser{}, "", fmt.Errorf("eof")
		}
		name := in.Text()

		fmt.Print("email: ")
		if !in.Scan() {
			return identity.PublicUser{}, "", fmt.Errorf("eof")
		}
		email := in.Text()

		fmt.Print("password (8-72 chars): ")
		if !in.Scan() {
			return identity.PublicUser{}, "", fmt.Errorf("eof")
		}
		password := in.Text()

		user, token, err := accounts.Register(ctx, account.RegisterInput{
			FullName:       name,
			Email:          email,
			Password:       password,
			RetypePassword: password,
		})
		if err != nil {
			fmt.Println("!", err)
			continue
		}
		return user, token, nil
	}
}
