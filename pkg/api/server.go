// Package api provides the REST API server for tonal
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/harrybellamy/tonal/pkg/interval"
	"github.com/harrybellamy/tonal/pkg/midi"
	"github.com/harrybellamy/tonal/pkg/note"
	"github.com/harrybellamy/tonal/pkg/pcset"
)

// @title Tonal API
// @version 1.0
// @description API for music-theory queries: notes, intervals, pitch-class sets
// @host localhost:8080
// @BasePath /api/v1

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/note", handleNote)
		v1.GET("/interval", handleInterval)
		v1.GET("/transpose", handleTranspose)
		v1.GET("/distance", handleDistance)
		v1.GET("/midi/:num", handleMidiName)
		v1.GET("/pcset/nearest", handleNearest)
		v1.GET("/pcset/degree", handleDegree)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r.Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "tonal",
	})
}

// handleNote godoc
// @Summary Parse a note name
// @Description Returns the structured descriptor of a note name such as C#4
// @Tags theory
// @Produce json
// @Param name query string true "Note name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/note [get]
func handleNote(c *gin.Context) {
	n := note.Get(c.Query("name"))
	if n.Empty {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note name"})
		return
	}
	resp := gin.H{
		"name":       n.Name,
		"pitchClass": n.PitchClass,
		"letter":     n.Letter,
		"acc":        n.Acc,
		"alt":        n.Alt,
		"chroma":     n.Chroma,
		"height":     n.Height,
	}
	if n.HasOct {
		resp["oct"] = n.Oct
		resp["freq"] = n.Freq
	}
	if n.HasMidi {
		resp["midi"] = n.Midi
	}
	c.JSON(http.StatusOK, resp)
}

// handleInterval godoc
// @Summary Parse an interval name
// @Description Returns the structured descriptor of an interval name such as 5P or m-2
// @Tags theory
// @Produce json
// @Param name query string true "Interval name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/interval [get]
func handleInterval(c *gin.Context) {
	i := interval.Get(c.Query("name"))
	if i.Empty {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interval name"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":      i.Name,
		"num":       i.Num,
		"quality":   i.Quality,
		"type":      i.Type,
		"step":      i.Step,
		"alt":       i.Alt,
		"dir":       int(i.Dir),
		"simple":    i.Simple,
		"semitones": i.Semitones,
		"chroma":    i.Chroma,
		"oct":       i.Oct,
	})
}

// handleTranspose godoc
// @Summary Transpose a note by an interval
// @Tags theory
// @Produce json
// @Param note query string true "Note name"
// @Param interval query string true "Interval name"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/v1/transpose [get]
func handleTranspose(c *gin.Context) {
	result := note.Transpose(c.Query("note"), c.Query("interval"))
	if result == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note or interval"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": result})
}

// handleDistance godoc
// @Summary Interval between two notes
// @Tags theory
// @Produce json
// @Param from query string true "Start note"
// @Param to query string true "End note"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/v1/distance [get]
func handleDistance(c *gin.Context) {
	result := note.Distance(c.Query("from"), c.Query("to"))
	if result == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note names"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"interval": result})
}

// handleMidiName godoc
// @Summary Spell a MIDI number as a note name
// @Tags theory
// @Produce json
// @Param num path number true "MIDI number"
// @Param sharps query boolean false "Prefer sharp spelling"
// @Param pitchClass query boolean false "Drop the octave"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/midi/{num} [get]
func handleMidiName(c *gin.Context) {
	num, err := strconv.ParseFloat(c.Param("num"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid MIDI number"})
		return
	}
	name := midi.MidiToNoteName(num, midi.NameOptions{
		Sharps:     c.Query("sharps") == "true",
		PitchClass: c.Query("pitchClass") == "true",
	})
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid MIDI number"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "freq": midi.MidiToFreq(num)})
}

// handleNearest godoc
// @Summary Snap a MIDI number to the nearest pitch in a set
// @Description The set is a 12-character '1'/'0' membership string, index 0 = C
// @Tags pcset
// @Produce json
// @Param set query string true "Pitch-class membership bits"
// @Param midi query int true "MIDI number to snap"
// @Success 200 {object} map[string]int
// @Failure 400 {object} map[string]string
// @Router /api/v1/pcset/nearest [get]
func handleNearest(c *gin.Context) {
	set := pcset.FromBits(c.Query("set"))
	m, err := strconv.Atoi(c.Query("midi"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid MIDI number"})
		return
	}
	nearest, ok := set.Nearest(m)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty pitch-class set"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"midi": nearest})
}

// handleDegree godoc
// @Summary Resolve a scale degree of a pitch-class set
// @Description Degree 1 is the tonic, negative degrees walk below it, 0 is invalid
// @Tags pcset
// @Produce json
// @Param set query string true "Pitch-class membership bits"
// @Param tonic query int true "Tonic MIDI number"
// @Param degree query int true "1-indexed degree"
// @Success 200 {object} map[string]int
// @Failure 400 {object} map[string]string
// @Router /api/v1/pcset/degree [get]
func handleDegree(c *gin.Context) {
	set := pcset.FromBits(c.Query("set"))
	tonic, err1 := strconv.Atoi(c.Query("tonic"))
	degree, err2 := strconv.Atoi(c.Query("degree"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tonic or degree"})
		return
	}
	m, ok := set.Degree(tonic, degree)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid degree or empty set"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"midi": m})
}
