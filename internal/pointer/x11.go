package pointer

import (
	"context"
	"fmt"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// X11Source polls the global pointer through the X server. It is used in
// wallpaper mode, where the window sits below every other window and never
// receives pointer events of its own.
type X11Source struct {
	// OriginX and OriginY are the window's top-left corner in root coordinates.
	OriginX, OriginY float64
	Interval         time.Duration

	conn *xgb.Conn
	root xproto.Window
}

func NewX11Source(originX, originY float64) (*X11Source, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	return &X11Source{
		OriginX:  originX,
		OriginY:  originY,
		Interval: time.Second / 60,
		conn:     conn,
		root:     setup.DefaultScreen(conn).Root,
	}, nil
}

// Position returns the pointer position in root window coordinates.
func (s *X11Source) Position() (int, int, error) {
	reply, err := xproto.QueryPointer(s.conn, s.root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(reply.RootX), int(reply.RootY), nil
}

func (s *X11Source) Run(ctx context.Context, move func(x, y float64)) error {
	defer s.conn.Close()

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			x, y, err := s.Position()
			if err != nil {
				return fmt.Errorf("query pointer: %w", err)
			}
			move(float64(x)-s.OriginX, float64(y)-s.OriginY)
		}
	}
}
