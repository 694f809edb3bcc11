package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"payarakit/internal/config"
	"payarakit/internal/paths"
	"payarakit/internal/remote"
	"payarakit/internal/tui"
)

var (
	cloudPick         bool
	cloudSubscription string
	cloudAll          bool
)

func newCloudCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cloud",
		Short: "Browse Payara Cloud subscriptions and namespaces",
	}
	cmd.AddCommand(newCloudSubscriptionsCmd())
	cmd.AddCommand(newCloudNamespacesCmd())
	return cmd
}

func newCloudSubscriptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "List subscriptions; --pick stores the chosen one as cloud.subscription",
		Args:  cobra.NoArgs,
		RunE:  runCloudSubscriptions,
	}
	cmd.Flags().BoolVar(&cloudPick, "pick", false, "Choose a subscription interactively and save it")
	return cmd
}

func newCloudNamespacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "namespaces",
		Short: "List namespaces of a subscription; --pick stores the chosen one as cloud.namespace",
		Args:  cobra.NoArgs,
		RunE:  runCloudNamespaces,
	}
	cmd.Flags().StringVar(&cloudSubscription, "subscription", "", "Subscription name (defaults to cloud.subscription)")
	cmd.Flags().BoolVar(&cloudPick, "pick", false, "Choose a namespace interactively and save it")
	cmd.Flags().BoolVar(&cloudAll, "all", false, "List namespaces of every subscription")
	return cmd
}

func runCloudSubscriptions(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	cache, err := s.cloudCache()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	if cloudPick {
		link, err := pickLink(cmd, "Select a subscription", cache.FetchSubscriptions(ctx))
		if err != nil {
			return err
		}
		return saveCloudSelection(cmd, s.paths, func(c *config.CloudConfig) {
			c.Subscription = link.Title
			c.Namespace = ""
		}, "subscription", link.Title)
	}

	links, err := cache.Subscriptions(ctx)
	if err != nil {
		s.logger.Errorf("list subscriptions: %v", err)
		return err
	}
	return writeLinks(cmd, links)
}

func runCloudNamespaces(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	cache, err := s.cloudCache()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	if cloudAll {
		return runAllNamespaces(cmd, cache)
	}

	subscription := firstNonBlank(cloudSubscription, s.cfg.Cloud.Subscription)
	if !remote.Selectable(subscription) {
		return fmt.Errorf("no subscription selected; pass --subscription or run `payarakit cloud subscriptions --pick`")
	}

	if cloudPick {
		link, err := pickLink(cmd, "Select a namespace in "+subscription, cache.FetchNamespaces(ctx, subscription))
		if err != nil {
			return err
		}
		return saveCloudSelection(cmd, s.paths, func(c *config.CloudConfig) {
			c.Subscription = subscription
			c.Namespace = link.Title
		}, "namespace", link.Title)
	}

	links, err := cache.Namespaces(ctx, subscription)
	if err != nil {
		s.logger.Errorf("list namespaces of %s: %v", subscription, err)
		return err
	}
	return writeLinks(cmd, links)
}

type namespaceListing struct {
	Subscription string        `json:"subscription"`
	Namespaces   []remote.Link `json:"namespaces"`
	Error        string        `json:"error,omitempty"`
}

// runAllNamespaces fetches every subscription's namespaces concurrently. A
// failure for one subscription does not affect the others.
func runAllNamespaces(cmd *cobra.Command, cache *remote.Cache) error {
	ctx := commandContext(cmd)
	subs, err := cache.Subscriptions(ctx)
	if err != nil {
		return err
	}

	listings := make([]namespaceListing, len(subs))
	fetch := func(ctx context.Context, onDone func(i int)) {
		var g errgroup.Group
		for i, sub := range subs {
			g.Go(func() error {
				links, err := cache.Namespaces(ctx, sub.Title)
				listings[i] = namespaceListing{Subscription: sub.Title, Namespaces: links}
				if err != nil {
					listings[i].Error = err.Error()
				}
				onDone(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	if tui.DetectMode(cmd.OutOrStdout(), outputJSON) == tui.ModeTUI {
		model := tui.NewProgressModel("Fetching", []tui.Column{
			{Header: "SUBSCRIPTION", Width: 24},
			{Header: "STATUS", Width: 8},
			{Header: "NAMESPACES", Width: 48},
		})
		for _, sub := range subs {
			model.AddRow(sub.Title, []string{sub.Title, "loading"})
		}
		var mu sync.Mutex
		return tui.RunWithWork(ctx, cmd.OutOrStdout(), model, func(ctx context.Context, send func(tea.Msg)) {
			fetch(ctx, func(i int) {
				mu.Lock()
				defer mu.Unlock()
				send(tui.RowUpdateMsg{Key: listings[i].Subscription, Fields: listingFields(listings[i])})
			})
		})
	}

	fetch(ctx, func(int) {})
	if outputJSON {
		return writeJSON(cmd, listings)
	}
	table := newTable(cmd.OutOrStdout(), "SUBSCRIPTION", "STATUS", "NAMESPACES")
	for _, l := range listings {
		f := listingFields(l)
		table.Append([]string{l.Subscription, f["STATUS"], f["NAMESPACES"]})
	}
	table.Render()
	return nil
}

func listingFields(l namespaceListing) map[string]string {
	switch {
	case l.Error != "":
		return map[string]string{"STATUS": "failed", "NAMESPACES": l.Error}
	case len(l.Namespaces) == 0:
		return map[string]string{"STATUS": "empty", "NAMESPACES": "-"}
	}
	return map[string]string{"STATUS": "fetched", "NAMESPACES": joinComma(remote.Titles(l.Namespaces))}
}

func pickLink(cmd *cobra.Command, title string, results <-chan remote.Result) (remote.Link, error) {
	if outputJSON || !tui.IsTerminal(cmd.InOrStdin()) || !tui.IsTerminal(cmd.OutOrStdout()) {
		return remote.Link{}, fmt.Errorf("--pick needs an interactive terminal")
	}
	return tui.Pick(cmd.InOrStdin(), cmd.OutOrStdout(), title, results)
}

func writeLinks(cmd *cobra.Command, links []remote.Link) error {
	if outputJSON {
		if links == nil {
			links = []remote.Link{}
		}
		return writeJSON(cmd, links)
	}
	if len(links) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "(none)")
		return nil
	}
	table := newTable(cmd.OutOrStdout(), "NAME", "LINK")
	for _, l := range links {
		table.Append([]string{l.Title, tui.NonEmptyOrDash(l.Href)})
	}
	table.Render()
	return nil
}

// saveCloudSelection rewrites the project config file with an updated cloud
// section. Environment overrides are not persisted.
func saveCloudSelection(cmd *cobra.Command, pp paths.ProjectPaths, update func(*config.CloudConfig), what, value string) error {
	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return err
	}
	update(&cfg.Cloud)
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(pp.ConfigFile, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Selected %s %s\n", what, strings.TrimSpace(value))
	return nil
}
