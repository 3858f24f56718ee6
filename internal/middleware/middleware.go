package middleware

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	ClientIDHeader = "X-Client-ID"
	clientIDKey    = "clientID"
	clientIDSrcKey = "clientIDSource"

	// ClientIDSupplied and ClientIDMinted say where the request's client id came from.
	ClientIDSupplied = "header"
	ClientIDMinted   = "minted"
)

var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ClientIdentity resolves the caller's client id from X-Client-ID, minting a
// new one when the header is missing or unusable. The id is echoed back in the
// response header.
func ClientIdentity(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.GetHeader(ClientIDHeader)
		source := ClientIDSupplied
		if !clientIDPattern.MatchString(clientID) {
			if clientID != "" {
				log.Warnf("Middleware: Ignoring malformed %s header", ClientIDHeader)
			}
			clientID = uuid.NewString()
			source = ClientIDMinted
			log.Debugf("Middleware: Minted client id %s", clientID)
		}
		c.Set(clientIDKey, clientID)
		c.Set(clientIDSrcKey, source)
		c.Header(ClientIDHeader, clientID)
		c.Next()
	}
}

// ClientID returns the id set by ClientIdentity, or "" outside it.
func ClientID(c *gin.Context) string {
	return c.GetString(clientIDKey)
}

func ClientIDSource(c *gin.Context) string {
	return c.GetString(clientIDSrcKey)
}

// RequestLogger writes one entry per request once it completes. Requests that
// arrived without a usable client id are flagged, since they start a fresh
// cart and session.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		statusCode := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"client_id":        ClientID(c),
			"client_id_source": ClientIDSource(c),
			"method":           c.Request.Method,
			"route":            route,
			"path":             c.Request.URL.Path,
			"status_code":      statusCode,
			"bytes":            c.Writer.Size(),
			"latency_ms":       time.Since(startTime).Milliseconds(),
		})

		switch {
		case len(c.Errors) > 0:
			entry.Error(c.Errors.ByType(gin.ErrorTypePrivate).String())
		case statusCode >= 500:
			entry.Error("Storefront request failed")
		case statusCode >= 400:
			entry.Warn("Storefront request rejected")
		case ClientIDSource(c) == ClientIDMinted:
			entry.Info("Storefront request served to a new client")
		default:
			entry.Debug("Storefront request served")
		}
	}
}
