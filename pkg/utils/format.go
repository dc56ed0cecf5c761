package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatCurrency renders value as US dollars with thousands separators and no cents,
// e.g. 48500000 -> "$48,500,000". Negative values keep the sign before the dollar.
func FormatCurrency(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	whole := strconv.FormatInt(int64(math.Round(value)), 10)
	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}
	return sign + "$" + b.String()
}

// FormatPercentage renders value with the given number of decimals and a "%" suffix.
// Ties round away from zero, so 6.125 at two decimals is "6.13%".
func FormatPercentage(value float64, decimals int) string {
	pow := math.Pow(10, float64(decimals))
	rounded := math.Round(value*pow) / pow
	return strconv.FormatFloat(rounded, 'f', decimals, 64) + "%"
}

// FormatFileSize renders a byte count in human-readable form using 1024-based units,
// e.g. 245760 -> "240 KB". Zero is "0 Bytes".
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}
	v := math.Round(float64(bytes)/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizes[i]
}

// FormatDate renders a timestamp like "January 2, 2025 03:04 PM".
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006 03:04 PM")
}

// Truncate returns s truncated to maxLen characters, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Plural returns "" when n is 1 and "s" otherwise.
func Plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// FormatMillions renders value as a compact dollar figure in millions,
// e.g. 4850000 -> "$4.85M".
func FormatMillions(value float64) string {
	return fmt.Sprintf("$%.2fM", value/1000000)
}
