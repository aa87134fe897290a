package temporal

import "fmt"

const labelDateLayout = "2006-01-02"

// Label renders the window as "name (start – end)", with "Present" as the end
// of an open window.
func (w Window[T]) Label(name string) string {
	end := "Present"
	if !w.Open {
		end = w.End.Format(labelDateLayout)
	}
	return fmt.Sprintf("%s (%s – %s)", name, w.Start.Format(labelDateLayout), end)
}
