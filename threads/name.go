package threads

import "strconv"

// Role is a symbolic thread identity reserved for a non-worker actor.
type Role string

// Nemesis is the fault-injecting actor. It is scheduled like any worker
// thread but carries a symbolic name instead of a numeric id.
const Nemesis Role = "nemesis"

// Name identifies a virtual thread: either a numeric worker id or a
// symbolic role. The zero value is Worker(0).
type Name struct {
	worker int
	role   Role
}

func Worker(i int) Name {
	if i < 0 {
		panic("threads: negative worker id " + strconv.Itoa(i))
	}
	return Name{worker: i}
}

func RoleName(r Role) Name {
	if r == "" {
		panic("threads: empty role")
	}
	return Name{role: r}
}

func (n Name) IsWorker() bool {
	return n.role == ""
}

// Worker returns the numeric id; only meaningful when IsWorker.
func (n Name) Worker() int {
	return n.worker
}

func (n Name) Role() Role {
	return n.role
}

func (n Name) String() string {
	if n.role != "" {
		return string(n.role)
	}
	return strconv.Itoa(n.worker)
}
