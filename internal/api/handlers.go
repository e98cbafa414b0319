package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/slimtomatillo/ephemeris/internal/catalog"
	"github.com/slimtomatillo/ephemeris/internal/geo"
)

// handleSatellites returns one page of the catalog.
// GET /api/v1/satellites?page=&text=&country=&nocache=
func (s *Server) handleSatellites(c *gin.Context) {
	q := catalog.Query{
		Page:    1,
		Text:    c.Query("text"),
		Country: c.Query("country"),
	}

	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
			return
		}
		q.Page = page
	}

	if v := c.Query("nocache"); v != "" {
		nocache, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nocache"})
			return
		}
		q.NoCache = nocache
	}

	sats, err := s.catalog.Satellites(c.Request.Context(), q)
	if err != nil {
		s.writeUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": sats,
		"meta": gin.H{"count": len(sats), "page": q.Page},
	})
}

// handleSearch finds satellites by name.
// GET /api/v1/satellites/search?name=&max=
func (s *Server) handleSearch(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	maxResults := 0
	if v := c.Query("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max"})
			return
		}
		maxResults = n
	}

	sats, err := s.catalog.FindByName(c.Request.Context(), name, maxResults)
	if err != nil {
		s.writeUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": sats,
		"meta": gin.H{"count": len(sats), "query": name},
	})
}

// handleSatelliteByID looks one satellite up by catalog number.
// GET /api/v1/satellites/:id
func (s *Server) handleSatelliteByID(c *gin.Context) {
	id := c.Param("id")

	sat, err := s.catalog.FindByID(c.Request.Context(), id)
	if err != nil {
		s.writeUpstreamError(c, err)
		return
	}
	if sat == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "satellite not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sat})
}

// handleCountries returns the launch-country reference list.
// GET /api/v1/countries?nocache=
func (s *Server) handleCountries(c *gin.Context) {
	noCache := false
	if v := c.Query("nocache"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nocache"})
			return
		}
		noCache = b
	}

	countries, err := s.catalog.Countries(c.Request.Context(), noCache)
	if err != nil {
		s.writeUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": countries,
		"meta": gin.H{"count": len(countries)},
	})
}

// handleDistance computes surface and slant distances between two geodetic
// points.
// GET /api/v1/distance?lat1=&lon1=&alt1=&lat2=&lon2=&alt2=
func (s *Server) handleDistance(c *gin.Context) {
	lat1, ok := s.floatQuery(c, "lat1")
	if !ok {
		return
	}
	lon1, ok := s.floatQuery(c, "lon1")
	if !ok {
		return
	}
	lat2, ok := s.floatQuery(c, "lat2")
	if !ok {
		return
	}
	lon2, ok := s.floatQuery(c, "lon2")
	if !ok {
		return
	}
	alt1, ok := s.floatQueryDefault(c, "alt1", 0)
	if !ok {
		return
	}
	alt2, ok := s.floatQueryDefault(c, "alt2", 0)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"haversine_km": geo.HaversineKm(lat1, lon1, lat2, lon2),
		"euclidean_km": geo.DistanceKm(lat1, lon1, alt1, lat2, lon2, alt2),
	})
}

// handleLook computes the look angles from an observer to a target.
// GET /api/v1/look?obs_lat=&obs_lon=&obs_alt=&tgt_lat=&tgt_lon=&tgt_alt=
func (s *Server) handleLook(c *gin.Context) {
	obsLat, ok := s.floatQuery(c, "obs_lat")
	if !ok {
		return
	}
	obsLon, ok := s.floatQuery(c, "obs_lon")
	if !ok {
		return
	}
	tgtLat, ok := s.floatQuery(c, "tgt_lat")
	if !ok {
		return
	}
	tgtLon, ok := s.floatQuery(c, "tgt_lon")
	if !ok {
		return
	}
	obsAlt, ok := s.floatQueryDefault(c, "obs_alt", 0)
	if !ok {
		return
	}
	tgtAlt, ok := s.floatQueryDefault(c, "tgt_alt", 0)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"elevation_deg": geo.ElevationAngle(obsLat, obsLon, obsAlt, tgtLat, tgtLon, tgtAlt),
		"azimuth_deg":   geo.AzimuthAngle(obsLat, obsLon, tgtLat, tgtLon),
		"range_km":      geo.DistanceKm(obsLat, obsLon, obsAlt, tgtLat, tgtLon, tgtAlt),
	})
}

// handleStats reports client pacing and cache state.
// GET /api/v1/stats
func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"client": s.client.Stats(),
		"cache":  s.catalog.CacheStats(),
	})
}

// floatQuery parses a required float query parameter, writing a 400 response
// on failure.
func (s *Server) floatQuery(c *gin.Context, name string) (float64, bool) {
	v := c.Query(name)
	if v == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " is required"})
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return f, true
}

func (s *Server) floatQueryDefault(c *gin.Context, name string, def float64) (float64, bool) {
	v := c.Query(name)
	if v == "" {
		return def, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return f, true
}
