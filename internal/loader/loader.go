package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"ingatlan/agent/internal/models"
	"ingatlan/agent/internal/registry"
)

var ErrMalformedRecord = errors.New("malformed record")

const (
	fieldSeparator = "#"
	kindPanel      = "PANEL"
	fallbackSource = "fallback"
)

// FallbackData is loaded when the input file cannot be opened. The FLAT
// records are not a known category and are rejected like any bad line.
var FallbackData = []string{
	"REALESTATE#Budapest#250000#100#4#FLAT",
	"REALESTATE#Debrecen#220000#120#5#FAMILYHOUSE",
	"REALESTATE#Nyíregyháza#110000#60#2#FARM",
	"REALESTATE#Nyíregyháza#250000#160#6#FAMILYHOUSE",
	"REALESTATE#Kisvárda#150000#50#2#FLAT",
	"REALESTATE#Nyíregyháza#150000#68#4#FLAT",
	"PANEL#Budapest#180000#70#3#FLAT#4#no",
	"PANEL#Debrecen#120000#35#2#FLAT#0#yes",
	"PANEL#Tiszaújváros#120000#750#3#FLAT#10#no",
	"PANEL#Nyíregyháza#170000#80#3#FLAT#7#no",
}

// Result summarises one load
type Result struct {
	Source       string `json:"source"`
	Loaded       int    `json:"loaded"`
	Rejected     int    `json:"rejected"`
	UsedFallback bool   `json:"used_fallback"`
}

// Loader reads `#`-separated listing records into a registry
type Loader struct {
	logger   *logrus.Logger
	fallback bool
}

// NewLoader creates a loader. With fallback set, an input file that cannot
// be opened is replaced by FallbackData instead of failing the load.
func NewLoader(logger *logrus.Logger, fallback bool) *Loader {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Loader{logger: logger, fallback: fallback}
}

// LoadFile loads every valid record of path into reg.
func (l *Loader) LoadFile(path string, reg *registry.Registry) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		if !l.fallback {
			return Result{Source: path}, fmt.Errorf("failed to open input file: %w", err)
		}
		l.logger.WithError(err).WithField("file", path).Warn("Input file not readable, loading fallback data")
		return l.LoadFallback(reg)
	}
	defer file.Close()

	return l.Load(file, path, reg)
}

// LoadFallback loads the built-in dataset into reg.
func (l *Loader) LoadFallback(reg *registry.Registry) (Result, error) {
	result, err := l.Load(strings.NewReader(strings.Join(FallbackData, "\n")), fallbackSource, reg)
	result.UsedFallback = true
	return result, err
}

// Load parses records from r. Malformed records are logged and skipped; only
// a read error aborts the load.
func (l *Loader) Load(r io.Reader, source string, reg *registry.Registry) (Result, error) {
	result := Result{Source: source}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}

		listing, err := ParseLine(line)
		if err != nil {
			result.Rejected++
			l.logger.WithError(err).WithFields(logrus.Fields{
				"source": source,
				"line":   lineNo,
				"record": line,
			}).Warn("Skipping record")
			continue
		}

		reg.Add(listing)
		result.Loaded++
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("failed to read %s: %w", source, err)
	}

	l.logger.WithFields(logrus.Fields{
		"source":   source,
		"loaded":   result.Loaded,
		"rejected": result.Rejected,
	}).Info("Loaded listings")
	return result, nil
}

// ParseLine parses a single record:
//
//	REALESTATE#location#pricePerArea#area#rooms#category
//	PANEL#location#pricePerArea#area#rooms#category#floor#yes|no
//
// Any kind other than PANEL is read as a plain property.
func ParseLine(line string) (models.Listing, error) {
	parts := strings.Split(line, fieldSeparator)
	if len(parts) < 6 {
		return nil, fmt.Errorf("%w: expected at least 6 fields, got %d", ErrMalformedRecord, len(parts))
	}

	kind := strings.ToUpper(strings.TrimSpace(parts[0]))
	location := parts[1]

	price, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: price per area: %v", ErrMalformedRecord, err)
	}
	area, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		return nil, fmt.Errorf("%w: area: %v", ErrMalformedRecord, err)
	}
	rooms, err := strconv.ParseFloat(strings.TrimSpace(parts[4]), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: rooms: %v", ErrMalformedRecord, err)
	}
	category, err := models.ParseCategory(parts[5])
	if err != nil {
		return nil, err
	}

	if kind != kindPanel {
		p, err := models.NewProperty(location, price, area, rooms, category)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	if len(parts) < 8 {
		return nil, fmt.Errorf("%w: panel record needs 8 fields, got %d", ErrMalformedRecord, len(parts))
	}
	floor, err := strconv.Atoi(strings.TrimSpace(parts[6]))
	if err != nil {
		return nil, fmt.Errorf("%w: floor: %v", ErrMalformedRecord, err)
	}
	insulated := strings.EqualFold(strings.TrimSpace(parts[7]), "yes")

	unit, err := models.NewApartmentUnit(location, price, area, rooms, category, floor, insulated)
	if err != nil {
		return nil, err
	}
	return unit, nil
}
