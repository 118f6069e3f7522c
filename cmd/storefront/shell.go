package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jrsteele09/go-storefront-client/authapi"
	"github.com/jrsteele09/go-storefront-client/gate"
	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/internal/utils"
	"github.com/jrsteele09/go-storefront-client/internal/validation"
	"github.com/jrsteele09/go-storefront-client/orders"
	"github.com/jrsteele09/go-storefront-client/products"
	"github.com/jrsteele09/go-storefront-client/session"
	"github.com/pkg/errors"
)

const prompt = "> "

var errUsage = errors.New("wrong arguments, see help")

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, sh *shell, args []string) error
}

// shell is one interactive client session over stdin/stdout.
type shell struct {
	out      io.Writer
	session  *session.Session
	auth     *authapi.Client
	products *products.Service
	orders   *orders.Service
	now      func() time.Time
	commands map[string]command
	order    []string
}

func newShell(out io.Writer, sess *session.Session, auth *authapi.Client, catalogue *products.Service, orderSvc *orders.Service) *shell {
	sh := &shell{
		out:      out,
		session:  sess,
		auth:     auth,
		products: catalogue,
		orders:   orderSvc,
		now:      time.Now,
		commands: map[string]command{},
	}
	sh.register("login", "login <email> <password>", "sign in", cmdLogin)
	sh.register("logout", "logout", "sign out and forget stored tokens", cmdLogout)
	sh.register("register", "register <email> <password> <confirm>", "create an account", cmdRegister)
	sh.register("whoami", "whoami", "show the signed in identity", cmdWhoami)
	sh.register("nav", "nav", "show the navigation for the current identity", cmdNav)
	sh.register("products", "products [search]", "list the catalogue", cmdProducts)
	sh.register("product", "product <id>", "show one product", cmdProduct)
	sh.register("product-create", "product-create <name> <price> <stock> <description...>", "add a product (admin)", cmdProductCreate)
	sh.register("product-update", "product-update <id> <field=value>...", "change name, price, stock or description (admin)", cmdProductUpdate)
	sh.register("product-delete", "product-delete <id>", "deactivate a product (admin)", cmdProductDelete)
	sh.register("orders", "orders [start end]", "list customer orders, dates as YYYY-MM-DD (admin)", cmdOrders)
	sh.register("help", "help", "list commands", cmdHelp)
	return sh
}

func (sh *shell) register(name, usage, help string, run func(context.Context, *shell, []string) error) {
	sh.commands[name] = command{usage: usage, help: help, run: run}
	sh.order = append(sh.order, name)
}

// run reads commands until quit or end of input. Command errors are shown and the loop continues.
func (sh *shell) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(sh.out, prompt)
	for scanner.Scan() {
		if sh.exec(ctx, scanner.Text()) {
			return nil
		}
		fmt.Fprint(sh.out, prompt)
	}
	return scanner.Err()
}

// exec runs one line and reports whether the shell should stop.
func (sh *shell) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	name, args := fields[0], fields[1:]
	if name == "quit" || name == "exit" {
		return true
	}

	cmd, ok := sh.commands[name]
	if !ok {
		sh.notify(fmt.Errorf("unknown command %q", name))
		return false
	}
	if err := cmd.run(ctx, sh, args); err != nil {
		if err == errUsage {
			err = fmt.Errorf("usage: %s", cmd.usage)
		}
		sh.notify(err)
	}
	return false
}

// notify shows err the way the UI shows a blocking alert.
func (sh *shell) notify(err error) {
	var verr *validation.Error
	var authErr *authapi.AuthenticationError
	switch {
	case apperrors.As(err, &verr):
		for _, f := range verr.Fields {
			fmt.Fprintf(sh.out, "! %s\n", f.Message)
		}
	case apperrors.As(err, &authErr):
		fmt.Fprintf(sh.out, "! %s\n", authErr.Error())
	case apperrors.Is(err, apperrors.ErrNetworkFailure):
		fmt.Fprintln(sh.out, "! The store is unreachable, try again later.")
	case apperrors.Is(err, apperrors.ErrForbidden):
		fmt.Fprintln(sh.out, "! You are not allowed to do that.")
	default:
		fmt.Fprintf(sh.out, "! %s\n", err)
	}
}

func cmdLogin(ctx context.Context, sh *shell, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	if err := sh.session.SignIn(ctx, session.Credentials{Email: args[0], Password: args[1]}); err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "Signed in as %s\n", sh.session.Identity().Email)
	return nil
}

func cmdLogout(ctx context.Context, sh *shell, _ []string) error {
	if err := sh.session.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "Signed out")
	return nil
}

func cmdRegister(ctx context.Context, sh *shell, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	user, err := sh.auth.Register(ctx, authapi.Registration{Email: args[0], Password: args[1], ConfirmPassword: args[2]})
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "Registered %s, you can now log in\n", user.Email)
	return nil
}

func cmdWhoami(_ context.Context, sh *shell, _ []string) error {
	id := sh.session.Identity()
	if id == nil {
		fmt.Fprintln(sh.out, "Not signed in")
		return nil
	}
	role := "customer"
	if id.IsAdmin {
		role = "admin"
	}
	fmt.Fprintf(sh.out, "%s (%s)\n", id.Email, role)
	return nil
}

func cmdNav(_ context.Context, sh *shell, _ []string) error {
	a := gate.EvaluateSource(sh.session)
	for _, item := range gate.NavItems(sh.session.Identity()) {
		fmt.Fprintf(sh.out, "  %-16s %s\n", item.Label, item.Path)
	}
	if a.Cart {
		fmt.Fprintf(sh.out, "  %-16s %s\n", "Cart", gate.RouteCart)
	}
	if a.AccountMenu {
		fmt.Fprintln(sh.out, "  [account menu]")
	}
	if a.LoginButton {
		fmt.Fprintln(sh.out, "  [login]")
	}
	return nil
}

func cmdProducts(ctx context.Context, sh *shell, args []string) error {
	list, err := sh.products.List(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK\tSTATUS")
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\t%s\n", p.ID, p.Name, p.Price, p.StockQuantity, p.Status())
	}
	return tw.Flush()
}

func cmdProduct(ctx context.Context, sh *shell, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := sh.products.Get(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "%s\n  %s\n  price %.2f, stock %d, %s\n", p.Name, p.Description, p.Price, p.StockQuantity, p.Status())
	return nil
}

func cmdProductCreate(ctx context.Context, sh *shell, args []string) error {
	if len(args) < 4 {
		return errUsage
	}
	price, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return errUsage
	}
	stock, err := strconv.Atoi(args[2])
	if err != nil {
		return errUsage
	}
	p, err := sh.products.Create(ctx, products.CreatePayload{
		Name:          args[0],
		Price:         price,
		StockQuantity: stock,
		Description:   strings.Join(args[3:], " "),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "Created %s (%s)\n", p.Name, p.ID)
	return nil
}

func cmdProductUpdate(ctx context.Context, sh *shell, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	payload, err := parseUpdate(args[1:])
	if err != nil {
		return err
	}
	p, err := sh.products.Update(ctx, args[0], payload)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "Updated %s: price %.2f, stock %d\n", p.Name, p.Price, p.StockQuantity)
	return nil
}

// parseUpdate reads name=, description=, price= and stock= pairs. Underscores in text values become spaces.
func parseUpdate(pairs []string) (products.UpdatePayload, error) {
	var payload products.UpdatePayload
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return payload, errUsage
		}
		switch key {
		case "name":
			payload.Name = utils.Ptr(strings.ReplaceAll(value, "_", " "))
		case "description":
			payload.Description = utils.Ptr(strings.ReplaceAll(value, "_", " "))
		case "price":
			price, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return payload, fmt.Errorf("price %q is not a number", value)
			}
			payload.Price = utils.Ptr(price)
		case "stock":
			stock, err := strconv.Atoi(value)
			if err != nil {
				return payload, fmt.Errorf("stock %q is not a whole number", value)
			}
			payload.StockQuantity = utils.Ptr(stock)
		default:
			return payload, fmt.Errorf("unknown field %q", key)
		}
	}
	return payload, nil
}

func cmdProductDelete(ctx context.Context, sh *shell, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := sh.products.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "Product deactivated")
	return nil
}

func cmdOrders(ctx context.Context, sh *shell, args []string) error {
	filter := orders.DefaultFilter(sh.now())
	switch len(args) {
	case 0:
	case 2:
		filter = orders.Filter{StartDate: args[0], EndDate: args[1]}
	default:
		return errUsage
	}

	list, err := sh.orders.List(ctx, filter)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCUSTOMER\tDATE\tSTATUS\tTOTAL")
	for _, o := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\n", o.ID, o.User.Email, o.OrderDate.Format(orders.DateLayout), o.OrderStatus, o.Total)
	}
	return tw.Flush()
}

func cmdHelp(_ context.Context, sh *shell, _ []string) error {
	tw := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	for _, name := range sh.order {
		cmd := sh.commands[name]
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.usage, cmd.help)
	}
	fmt.Fprintln(tw, "  quit\tleave the shell")
	return tw.Flush()
}
