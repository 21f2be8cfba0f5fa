package command

import (
	"strconv"
	"time"

	"github.com/dreamware/torua/internal/engine"
)

// ErrUnknownCommand is returned by Dispatch for a command name spec.md
// §6 does not name.
var ErrUnknownCommand = engine.ErrSyntax

// toBytesSlice converts string args to [][]byte, the currency Command's
// methods deal in (spec.md §1 treats the wire codec as external; this is
// the seam where decoded-but-still-textual wire arguments become the
// byte-slice values containers actually store).
func toBytesSlice(args []string) [][]byte {
	out := make([][]byte, len(args))
	for i, a := range args {
		out[i] = []byte(a)
	}
	return out
}

// Dispatch routes a parsed command line (name plus string arguments) to
// the matching Command method, the single point cmd/collectiond's
// per-connection parser calls into. clientID and now are needed only by
// the blocking family; every other command ignores them.
func (c *Command) Dispatch(clientID string, name string, args []string, now time.Time) (Result, error) {
	switch name {
	case "SADD":
		if len(args) < 2 {
			return Result{}, engine.ErrSyntax
		}
		return c.SAdd(args[0], toBytesSlice(args[1:])), nil
	case "SREM":
		if len(args) < 2 {
			return Result{}, engine.ErrSyntax
		}
		return c.SRem(args[0], toBytesSlice(args[1:])), nil
	case "SMOVE":
		if len(args) != 3 {
			return Result{}, engine.ErrSyntax
		}
		return c.SMove(args[0], args[1], []byte(args[2])), nil
	case "SISMEMBER":
		if len(args) != 2 {
			return Result{}, engine.ErrSyntax
		}
		return c.SIsMember(args[0], []byte(args[1])), nil
	case "SCARD":
		if len(args) != 1 {
			return Result{}, engine.ErrSyntax
		}
		return c.SCard(args[0]), nil
	case "SPOP":
		if len(args) != 1 {
			return Result{}, engine.ErrSyntax
		}
		return c.SPop(args[0]), nil
	case "SRANDMEMBER":
		if len(args) != 1 {
			return Result{}, engine.ErrSyntax
		}
		return c.SRandMember(args[0]), nil
	case "SINTER":
		if len(args) < 1 {
			return Result{}, engine.ErrSyntax
		}
		return c.SInter(args), nil
	case "SINTERSTORE":
		if len(args) < 2 {
			return Result{}, engine.ErrSyntax
		}
		return c.SInterStore(args[0], args[1:]), nil
	case "SUNION":
		if len(args) < 1 {
			return Result{}, engine.ErrSyntax
		}
		return c.SUnion(args), nil
	case "SUNIONSTORE":
		if len(args) < 2 {
			return Result{}, engine.ErrSyntax
		}
		return c.SUnionStore(args[0], args[1:]), nil
	case "SDIFF":
		if len(args) < 1 {
			return Result{}, engine.ErrSyntax
		}
		return c.SDiff(args), nil
	case "SDIFFSTORE":
		if len(args) < 2 {
			return Result{}, engine.ErrSyntax
		}
		return c.SDiffStore(args[0], args[1:]), nil
	case "LPUSH":
		if len(args) < 2 {
			return Result{}, engine.ErrSyntax
		}
		return c.LPush(args[0], toBytesSlice(args[1:])), nil
	case "RPUSH":
		if len(args) < 2 {
			return Result{}, engine.ErrSyntax
		}
		return c.RPush(args[0], toBytesSlice(args[1:])), nil
	case "LPUSHX":
		if len(args) != 2 {
			return Result{}, engine.ErrSyntax
		}
		return c.LPushX(args[0], []byte(args[1])), nil
	case "RPUSHX":
		if len(args) != 2 {
			return Result{}, engine.ErrSyntax
		}
		return c.RPushX(args[0], []byte(args[1])), nil
	case "LINSERT":
		if len(args) != 4 {
			return Result{}, engine.ErrSyntax
		}
		where, err := ParseSide(args[1])
		if err != nil {
			return Result{}, err
		}
		return c.LInsert(args[0], where, []byte(args[2]), []byte(args[3])), nil
	case "LLEN":
		if len(args) != 1 {
			return Result{}, engine.ErrSyntax
		}
		return c.LLen(args[0]), nil
	case "LINDEX":
		if len(args) != 2 {
			return Result{}, engine.ErrSyntax
		}
		idx, err := strconv.Atoi(args[1])
		if err != nil {
			return Result{}, engine.ErrSyntax
		}
		return c.LIndex(args[0], idx), nil
	case "LSET":
		if len(args) != 3 {
			return Result{}, engine.ErrSyntax
		}
		idx, err := strconv.Atoi(args[1])
		if err != nil {
			return Result{}, engine.ErrSyntax
		}
		return c.LSet(args[0], idx, []byte(args[2])), nil
	case "LPOP":
		if len(args) != 1 {
			return Result{}, engine.ErrSyntax
		}
		return c.LPop(args[0]), nil
	case "RPOP":
		if len(args) != 1 {
			return Result{}, engine.ErrSyntax
		}
		return c.RPop(args[0]), nil
	case "LRANGE":
		if len(args) != 3 {
			return Result{}, engine.ErrSyntax
		}
		start, err1 := strconv.Atoi(args[1])
		stop, err2 := strconv.Atoi(args[2])
		if err1 != nil || err2 != nil {
			return Result{}, engine.ErrSyntax
		}
		return c.LRange(args[0], start, stop), nil
	case "LTRIM":
		if len(args) != 3 {
			return Result{}, engine.ErrSyntax
		}
		start, err1 := strconv.Atoi(args[1])
		stop, err2 := strconv.Atoi(args[2])
		if err1 != nil || err2 != nil {
			return Result{}, engine.ErrSyntax
		}
		return c.LTrim(args[0], start, stop), nil
	case "LREM":
		if len(args) != 3 {
			return Result{}, engine.ErrSyntax
		}
		count, err := strconv.Atoi(args[1])
		if err != nil {
			return Result{}, engine.ErrSyntax
		}
		return c.LRem(args[0], count, []byte(args[2])), nil
	case "RPOPLPUSH":
		if len(args) != 2 {
			return Result{}, engine.ErrSyntax
		}
		return c.RPopLPush(args[0], args[1]), nil
	case "BLPOP":
		return c.dispatchBlockingPop(clientID, args, now, false)
	case "BRPOP":
		return c.dispatchBlockingPop(clientID, args, now, true)
	case "BRPOPLPUSH":
		if len(args) != 3 {
			return Result{}, engine.ErrSyntax
		}
		timeout, err := parseTimeout(args[2])
		if err != nil {
			return Result{}, err
		}
		return c.BRPopLPush(clientID, args[0], args[1], timeout, false, now), nil
	default:
		return Result{}, ErrUnknownCommand
	}
}

func (c *Command) dispatchBlockingPop(clientID string, args []string, now time.Time, tail bool) (Result, error) {
	if len(args) < 2 {
		return Result{}, engine.ErrSyntax
	}
	keys := args[:len(args)-1]
	timeout, err := parseTimeout(args[len(args)-1])
	if err != nil {
		return Result{}, err
	}
	if tail {
		return c.BRPop(clientID, keys, timeout, false, now), nil
	}
	return c.BLPop(clientID, keys, timeout, false, now), nil
}

// parseTimeout validates the wire-level timeout argument per spec.md §7
// category 5: non-integer or negative is ErrBadTimeout.
func parseTimeout(s string) (float64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, engine.ErrBadTimeout
	}
	return float64(v), nil
}
