package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"go.coinshield.dev/wordcodec/denylist"
)

// openStore opens the configured denylist and loads both sets.
func (a *app) openStore(ctx context.Context) (*denylist.Store, error) {
	store, err := denylist.Open(ctx, a.cfg.Denylist.Path, denylist.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	if _, err := store.LoadBannedAccounts(ctx); err != nil {
		store.Close()
		return nil, err
	}
	if _, err := store.LoadBannedIPAddresses(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func parseKind(s string) (denylist.Kind, error) {
	switch denylist.Kind(s) {
	case denylist.Account, denylist.IPAddress:
		return denylist.Kind(s), nil
	}
	return "", fmt.Errorf("unknown entry kind %q, want %q or %q", s, denylist.IPAddress, denylist.Account)
}

func newBanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "ban <ip|account> <value>",
		Short:     "Add an IP address or account to the denylist",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(denylist.IPAddress), string(denylist.Account)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			value := strings.TrimSpace(args[1])
			if kind == denylist.IPAddress {
				if value, err = denylist.NormalizeIP(value); err != nil {
					return err
				}
				err = store.SaveBannedIPAddress(cmd.Context(), value)
			} else {
				err = store.BanAccount(cmd.Context(), value)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "banned %s %s\n", kind, value)
			return nil
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "check <ip|account> <value>",
		Short:     "Report whether an IP address or account is banned",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(denylist.IPAddress), string(denylist.Account)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			banned := store.IsBannedAccount(args[1])
			if kind == denylist.IPAddress {
				banned = store.IsBannedIPAddress(args[1])
			}
			status := "not banned"
			if banned {
				status = "banned"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", kind, args[1], status)
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List banned accounts and IP addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			for _, kind := range []denylist.Kind{denylist.Account, denylist.IPAddress} {
				for _, e := range store.Entries(kind) {
					fmt.Fprintf(out, "%-7s  %-40s  %s  (%s)\n", e.Kind, e.Value, e.FormatBannedAt(), humanize.Time(e.BannedAt))
				}
			}
			return nil
		},
	}
}
