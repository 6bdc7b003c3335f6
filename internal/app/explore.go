package app

import (
	"context"

	"github.com/rs/zerolog"

	"smart_scout/internal/fetch"
	"smart_scout/internal/guide"
	"smart_scout/internal/hosting"
	"smart_scout/internal/htmlscan"
	"smart_scout/internal/report"
	"smart_scout/internal/resolve"
)

// exploration carries one guideline's report plus the raw guide page HTML,
// which only the markdown excerpt writer needs.
type exploration struct {
	report.Guideline
	PageHTML string
}

func (x exploration) source() (kind, url string) {
	switch {
	case x.DAK != nil:
		return "dak", x.DAKSource
	case x.Page != nil:
		return "html", x.Page.SourceURL
	default:
		return "none", ""
	}
}

type explorer struct {
	client *fetch.Client
	hosts  resolve.Hosts
	log    zerolog.Logger
}

// explore gathers everything available for one guideline: repository
// metadata, endpoint availability, then content: structured JSON first,
// guide page HTML as the fallback, downloads page on top of the HTML path.
// Nothing here fails; whatever could not be fetched is simply absent.
func (e *explorer) explore(ctx context.Context, id string) exploration {
	result := exploration{Guideline: report.Guideline{ID: id}}

	result.Repo = hosting.Lookup(ctx, e.client, e.hosts, id)
	result.Availability = hosting.Probe(ctx, e.client, e.hosts, id)

	if res, ok := e.client.FirstSuccess(ctx, resolve.Candidates(e.hosts, id, resolve.KindGuideJSON)); ok {
		doc, err := guide.Parse(res.Body)
		if err != nil {
			e.log.Debug().Str("guideline", id).Str("url", res.URL).Err(err).Msg("guide JSON did not decode")
		} else if summary := guide.Summarize(doc); summary != nil {
			e.log.Info().Str("guideline", id).Str("url", res.URL).Msg("fetched implementation guide JSON")
			result.DAK = summary
			result.DAKSource = res.URL
			return result
		}
	}

	res, ok := e.client.FirstSuccess(ctx, resolve.Candidates(e.hosts, id, resolve.KindGuideHTML))
	if !ok {
		e.log.Info().Str("guideline", id).Msg("no content under any known URL convention")
		return result
	}
	e.log.Info().Str("guideline", id).Str("url", res.URL).Msg("fetched guide page HTML")

	page := htmlscan.GuidePage(string(res.Body), res.URL)
	result.Page = &page
	result.PageHTML = string(res.Body)

	if dres, ok := e.client.FirstSuccess(ctx, resolve.Candidates(e.hosts, id, resolve.KindDownloads)); ok {
		downloads := htmlscan.DownloadsPage(string(dres.Body), dres.URL)
		result.Downloads = &downloads
	}

	return result
}
