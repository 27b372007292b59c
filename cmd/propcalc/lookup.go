package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/propcalc/internal/config"
	"github.com/rgehrsitz/propcalc/internal/output"
	"github.com/rgehrsitz/propcalc/internal/property"
	"github.com/rgehrsitz/propcalc/internal/store"
)

// addressLookup builds the RentCast lookup, cached when a backend is
// configured. The returned close func releases the cache.
func addressLookup(s config.Settings, log zerolog.Logger) (property.AddressLookup, func()) {
	client := property.NewRentCastClient(s.Providers.RentCastAPIKey, s.Providers.RentCastBaseURL, s.ProviderTimeout())

	cache, err := store.Open(s.Cache)
	if err != nil {
		log.Warn().Err(err).Str("backend", s.Cache.Backend).Msg("cache unavailable, looking up without it")
		return client, func() {}
	}
	if cache == nil {
		return client, func() {}
	}
	closeCache := func() {
		if err := cache.Close(); err != nil {
			log.Warn().Err(err).Msg("closing cache")
		}
	}
	return property.NewCachedLookup(client, cache, s.CacheTTL(), log), closeCache
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func lookupCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lookup [address]",
		Short: "Look up property details for a street address",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.loadSettings()
			if err != nil {
				return err
			}
			if s.Providers.RentCastAPIKey == "" {
				return fmt.Errorf("no RentCast API key configured; run 'propcalc setup' or set %s", config.EnvRentCastAPIKey)
			}
			log := newLogger(s)

			lookup, closeLookup := addressLookup(s, log)
			defer closeLookup()

			rec, err := lookup.LookupAddress(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, rec)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), output.FormatProperty(rec))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the record as JSON")
	return cmd
}

func zpidsCmd(opts *rootOptions) *cobra.Command {
	var sortBy string

	cmd := &cobra.Command{
		Use:   "zpids [zipcode]",
		Short: "List the Zillow property IDs for sale in a zipcode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.loadSettings()
			if err != nil {
				return err
			}
			newLogger(s)

			scraper := property.NewZillowScraper(s.Providers.ZillowBaseURL, s.ProviderTimeout())
			ids, err := scraper.FetchZPIDs(cmd.Context(), args[0], sortBy)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", "", "Listing order (newest, high-low, low-high; default relevance)")
	return cmd
}

func zestimateCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "zestimate [zpid]",
		Short: "Fetch the Zestimate document for a Zillow property ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zpid, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid zpid %q: %w", args[0], err)
			}
			s, err := opts.loadSettings()
			if err != nil {
				return err
			}
			if s.Providers.RapidAPIKey == "" {
				return fmt.Errorf("no RapidAPI key configured; run 'propcalc setup' or set %s", config.EnvRapidAPIKey)
			}
			newLogger(s)

			client := property.NewZestimateClient(s.Providers.RapidAPIKey, s.Providers.RapidAPIHost, s.ProviderTimeout())
			doc, err := client.FetchZestimate(cmd.Context(), zpid)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, doc)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), output.FormatFields(property.Flatten(doc)))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw document as JSON")
	return cmd
}
