package probe

import (
	"context"
	"fmt"
	"net"

	"testctl/internal/check"
)

// TCP passes when Address accepts a connection.
type TCP struct {
	Address string
	Dialer  net.Dialer
}

// Invoke dials the address and closes the connection right away.
func (t *TCP) Invoke(ctx context.Context) (check.Verdict, error) {
	conn, err := t.Dialer.DialContext(ctx, "tcp", t.Address)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return check.Verdict{}, ctxErr
		}
		return check.Fail("%v", err), nil
	}
	_ = conn.Close()
	return check.Pass(fmt.Sprintf("connected to %s", t.Address)), nil
}
