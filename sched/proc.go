package sched

import (
	"strconv"

	"github.com/pavlosg/havoc/threads"
)

// Proc is the logical identity occupying a thread. Worker processes are
// plain numbers; a role-tagged process carries the role plus an
// incarnation counter bumped on crash/replace, so it can never be confused
// with a numeric process.
type Proc struct {
	n    int64
	role threads.Role
}

func WorkerProc(n int64) Proc {
	if n < 0 {
		panic("sched: negative process number " + strconv.FormatInt(n, 10))
	}
	return Proc{n: n}
}

func RoleProc(role threads.Role) Proc {
	if role == "" {
		panic("sched: empty role")
	}
	return Proc{role: role}
}

func (p Proc) IsWorker() bool {
	return p.role == ""
}

// Int returns the process number for workers, the incarnation counter for
// role processes.
func (p Proc) Int() int64 {
	return p.n
}

func (p Proc) Role() threads.Role {
	return p.role
}

func (p Proc) String() string {
	if p.role == "" {
		return strconv.FormatInt(p.n, 10)
	}
	if p.n == 0 {
		return string(p.role)
	}
	return string(p.role) + ":" + strconv.FormatInt(p.n, 10)
}
