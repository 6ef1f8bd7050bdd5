package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/openkraft/testgap/internal/domain"
)

// Node is one arc of the sunburst: module, kind or entity.
type Node struct {
	Name     string  `json:"name"`
	Value    int     `json:"value,omitempty"`
	Status   string  `json:"status,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

const (
	statusTested   = "tested"
	statusUntested = "untested"
)

// Hierarchy groups the coverage as module → kind → entity. Entity arcs are
// weighted by complexity.
func Hierarchy(cov domain.Coverage) *Node {
	root := &Node{Name: "root", Children: []*Node{}}

	for _, m := range cov.Modules {
		module := &Node{Name: m.Name, Children: []*Node{}}
		kinds := make(map[domain.EntityKind]*Node)

		add := func(entities []domain.Entity, status string) {
			for _, e := range entities {
				kind, ok := kinds[e.Kind]
				if !ok {
					kind = &Node{Name: string(e.Kind), Children: []*Node{}}
					kinds[e.Kind] = kind
					module.Children = append(module.Children, kind)
				}
				kind.Children = append(kind.Children, &Node{
					Name:   displayName(e),
					Value:  e.Complexity,
					Status: status,
				})
			}
		}
		add(m.Tested, statusTested)
		add(m.Untested, statusUntested)

		root.Children = append(root.Children, module)
	}
	return root
}

type vizData struct {
	Title    string
	Total    int
	Tested   int
	Untested int
	Percent  string
	JSON     string
}

// Visualization renders a self-contained HTML page with a D3 sunburst of
// the coverage and summary stat boxes.
func (r *Renderer) Visualization(a *domain.Analysis) (string, error) {
	data, err := json.Marshal(Hierarchy(a.Coverage))
	if err != nil {
		return "", fmt.Errorf("encoding visualization data: %w", err)
	}

	var buf bytes.Buffer
	err = vizTemplate.Execute(&buf, vizData{
		Title:    a.ProjectName + " Test Coverage Visualization",
		Total:    len(a.Entities),
		Tested:   len(a.Coverage.Tested),
		Untested: len(a.Coverage.Untested),
		Percent:  fmt.Sprintf("%.1f", a.Coverage.Percentage()),
		JSON:     string(data),
	})
	if err != nil {
		return "", fmt.Errorf("rendering visualization: %w", err)
	}
	return buf.String(), nil
}

var vizTemplate = template.Must(template.New("viz").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{html .Title}}</title>
    <script src="https://d3js.org/d3.v7.min.js"></script>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 0; background: #f9f9f9; }
        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
        h1 { color: #333; text-align: center; }
        .stats { display: flex; justify-content: space-around; margin-bottom: 20px; }
        .stat-box { background: white; padding: 15px; border-radius: 5px; box-shadow: 0 2px 5px rgba(0,0,0,0.1); text-align: center; width: 200px; }
        .stat-value { font-size: 24px; font-weight: bold; margin: 10px 0; }
        .tested { color: #4CAF50; }
        .untested { color: #F44336; }
        .visualization { display: flex; justify-content: center; }
        .tooltip { position: absolute; background: rgba(0,0,0,0.7); color: white; padding: 5px 10px; border-radius: 3px; font-size: 12px; }
        path { stroke: #fff; }
        path:hover { opacity: 0.8; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{html .Title}}</h1>
        <div class="stats">
            <div class="stat-box">
                <div>Total Items</div>
                <div class="stat-value">{{.Total}}</div>
            </div>
            <div class="stat-box">
                <div>Tested Items</div>
                <div class="stat-value tested">{{.Tested}}</div>
            </div>
            <div class="stat-box">
                <div>Untested Items</div>
                <div class="stat-value untested">{{.Untested}}</div>
            </div>
            <div class="stat-box">
                <div>Coverage</div>
                <div class="stat-value">{{.Percent}}%</div>
            </div>
        </div>
        <div class="visualization">
            <div id="sunburst"></div>
        </div>
    </div>

    <script>
        const data = {{.JSON}};

        const width = 700;
        const height = 700;
        const radius = width / 2;

        const arc = d3.arc()
            .startAngle(d => d.x0)
            .endAngle(d => d.x1)
            .padAngle(d => Math.min((d.x1 - d.x0) / 2, 0.005))
            .padRadius(radius / 2)
            .innerRadius(d => d.y0)
            .outerRadius(d => d.y1 - 1);

        const root = d3.partition()
            .size([2 * Math.PI, radius])
            (d3.hierarchy(data)
                .sum(d => d.value || 0)
                .sort((a, b) => b.value - a.value));

        const svg = d3.select("#sunburst")
            .append("svg")
            .attr("viewBox", [-width / 2, -height / 2, width, height])
            .attr("width", width)
            .attr("height", height)
            .style("font", "10px sans-serif");

        const tooltip = d3.select("body").append("div")
            .attr("class", "tooltip")
            .style("opacity", 0);

        const label = d => d.ancestors().map(n => n.data.name).reverse().join(".");

        svg.append("g")
            .selectAll("path")
            .data(root.descendants().filter(d => d.depth))
            .join("path")
            .attr("fill", d => d.data.status === "tested" ? "#4CAF50" :
                              (d.data.status === "untested" ? "#F44336" :
                              (d.depth === 1 ? "#2196F3" : "#FFC107")))
            .attr("d", arc)
            .on("mouseover", (event, d) => {
                tooltip.transition().duration(200).style("opacity", .9);
                tooltip.html(label(d))
                    .style("left", (event.pageX + 5) + "px")
                    .style("top", (event.pageY - 28) + "px");
            })
            .on("mouseout", () => {
                tooltip.transition().duration(500).style("opacity", 0);
            })
            .append("title")
            .text(label);
    </script>
</body>
</html>
`))
