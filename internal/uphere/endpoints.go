package uphere

import (
	"context"
	"net/url"
	"strconv"
)

// LocationOptions refine a satellite location request. Lat/Lng, when both
// set, ask the upstream service to include elevation and azimuth relative to
// that observer.
type LocationOptions struct {
	Lat   *float64
	Lng   *float64
	Units string // "metric" or "imperial"; upstream defaults to imperial
}

// SatelliteList fetches one page of the satellite catalog. Both filters are
// optional; a non-list payload yields an empty result, matching the
// endpoint's "list or nothing" contract.
func (c *Client) SatelliteList(ctx context.Context, page int, text, country string) ([]any, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if text != "" {
		params.Set("text", text)
	}
	if country != "" {
		params.Set("country", country)
	}

	payload, err := c.Call(ctx, "satellite/list", params)
	if err != nil {
		return nil, err
	}
	list, _ := payload.([]any)
	return list, nil
}

// Countries fetches the reference list of launch countries.
func (c *Client) Countries(ctx context.Context) ([]any, error) {
	payload, err := c.Call(ctx, "satellite/list/countries", nil)
	if err != nil {
		return nil, err
	}
	list, _ := payload.([]any)
	return list, nil
}

// LaunchSites fetches the reference list of launch sites.
func (c *Client) LaunchSites(ctx context.Context) ([]any, error) {
	payload, err := c.Call(ctx, "satellite/list/launch-sites", nil)
	if err != nil {
		return nil, err
	}
	list, _ := payload.([]any)
	return list, nil
}

// VisibleSatellites lists objects currently visible from the given location.
func (c *Client) VisibleSatellites(ctx context.Context, lat, lng float64) ([]any, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))

	payload, err := c.Call(ctx, "user/visible", params)
	if err != nil {
		return nil, err
	}
	list, _ := payload.([]any)
	return list, nil
}

// SatelliteLocation fetches the current position of a satellite by NORAD id.
func (c *Client) SatelliteLocation(ctx context.Context, id string, opts LocationOptions) (map[string]any, error) {
	params := url.Values{}
	units := opts.Units
	if units == "" {
		units = "imperial"
	}
	params.Set("units", units)
	if opts.Lat != nil {
		params.Set("lat", strconv.FormatFloat(*opts.Lat, 'f', -1, 64))
	}
	if opts.Lng != nil {
		params.Set("lng", strconv.FormatFloat(*opts.Lng, 'f', -1, 64))
	}

	payload, err := c.Call(ctx, "satellites/"+id+"/location", params)
	if err != nil {
		return nil, err
	}
	obj, _ := payload.(map[string]any)
	return obj, nil
}

// SatelliteOrbit fetches the predicted ground track for the next periodMin
// minutes.
func (c *Client) SatelliteOrbit(ctx context.Context, id string, periodMin int) ([]any, error) {
	params := url.Values{}
	params.Set("period", strconv.Itoa(periodMin))

	payload, err := c.Call(ctx, "satellites/"+id+"/orbit", params)
	if err != nil {
		return nil, err
	}
	list, _ := payload.([]any)
	return list, nil
}

// SatelliteDetails fetches the catalog detail record for a satellite.
func (c *Client) SatelliteDetails(ctx context.Context, id string) (map[string]any, error) {
	payload, err := c.Call(ctx, "satellites/"+id+"/details", nil)
	if err != nil {
		return nil, err
	}
	obj, _ := payload.(map[string]any)
	return obj, nil
}
