package router

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Screen represents a screen that can be navigated to
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Router keeps a stack of screens. Only the top screen receives input.
type Router struct {
	stack  []Screen
	width  int
	height int
}

// New creates a router rooted at initialScreen.
func New(initialScreen Screen) *Router {
	return &Router{
		stack: []Screen{initialScreen},
	}
}

// Init initializes the top screen
func (r *Router) Init() tea.Cmd {
	if current := r.Current(); current != nil {
		return current.Init()
	}
	return nil
}

// Update routes a message to the top screen. Escape pops the stack when
// there is somewhere to go back to.
func (r *Router) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.SetSize(msg.Width, msg.Height)
		return r, nil

	case tea.KeyMsg:
		if msg.String() == "esc" && r.CanGoBack() {
			return r, r.Pop()
		}
	}

	current := r.Current()
	if current == nil {
		return r, nil
	}
	updated, cmd := current.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return r, cmd
}

// View renders the top screen
func (r *Router) View() string {
	if current := r.Current(); current != nil {
		return current.View()
	}
	return "No screen available"
}

// SetSize records the terminal size and forwards it to the top screen.
func (r *Router) SetSize(width, height int) {
	r.width = width
	r.height = height

	if current := r.Current(); current != nil {
		current.SetSize(width, height)
	}
}

// Push adds a new screen to the navigation stack
func (r *Router) Push(screen Screen) tea.Cmd {
	screen.SetSize(r.width, r.height)
	r.stack = append(r.stack, screen)
	return screen.Init()
}

// Pop removes the top screen. The root screen is never removed.
func (r *Router) Pop() tea.Cmd {
	if !r.CanGoBack() {
		return nil
	}

	r.stack = r.stack[:len(r.stack)-1]

	current := r.Current()
	current.SetSize(r.width, r.height)
	return current.Init()
}

// Replace swaps the top screen for screen.
func (r *Router) Replace(screen Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(screen)
	}

	screen.SetSize(r.width, r.height)
	r.stack[len(r.stack)-1] = screen
	return screen.Init()
}

// Current returns the top screen, or nil for an empty stack.
func (r *Router) Current() Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the current navigation depth
func (r *Router) Depth() int {
	return len(r.stack)
}

// CanGoBack returns true if there are screens to go back to
func (r *Router) CanGoBack() bool {
	return len(r.stack) > 1
}
