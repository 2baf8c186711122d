// Package preview serves a generated project directory over HTTP so the
// scaffold can be inspected in a browser before it is handed to a real
// Next.js toolchain.
package preview

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"

	"github.com/skip2/go-qrcode"
)

type Server struct {
	Dir  string
	Addr string
}

// URL returns the address a browser on the local network should open,
// substituting the first non-loopback interface when the server binds
// to all interfaces.
func (s *Server) URL() string {
	host, port, err := net.SplitHostPort(s.Addr)
	if err != nil {
		return "http://" + s.Addr
	}
	if host == "" || host == "0.0.0.0" {
		host = localIP()
	}
	return fmt.Sprintf("http://%s:%s", host, port)
}

// WriteQR renders the preview URL as a PNG QR code inside the project
// directory, for opening the preview from a phone.
func (s *Server) WriteQR() (string, error) {
	path := filepath.Join(s.Dir, "preview-qr.png")
	if err := qrcode.WriteFile(s.URL(), qrcode.Medium, 256, path); err != nil {
		return "", fmt.Errorf("failed to write QR code: %w", err)
	}
	return path, nil
}

// Serve blocks until the listener fails.
func (s *Server) Serve() error {
	log.Printf("[*] Preview available at %s", s.URL())
	return http.ListenAndServe(s.Addr, http.FileServer(http.Dir(s.Dir)))
}

func localIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return "127.0.0.1"
}
