package vis

// page takes, in order: the escaped title, the background colour, the replay items as
// a JSON array and the delay between items in milliseconds.
const page = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        * {
            margin: 0;
        }
        body {
            background: %s;
        }
        #citygraph {
            width: 100vw;
            height: 100vh;
        }
    </style>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <script type="text/javascript"
      src="https://unpkg.com/vis-network/standalone/umd/vis-network.min.js"></script>
  </head>
  <body>
    <div id="citygraph"></div>
    <script type="text/javascript">
const items = %s;
const delay = %d;

const container = document.getElementById("citygraph");
const network = new vis.Network(container, { nodes: [], edges: [] }, {
  nodes: { shape: "dot", font: { face: "Nunito" } },
  physics: {
    enabled: true,
    solver: "barnesHut",
    barnesHut: { gravitationalConstant: -10_000 },
  },
});

let index = 0;

function addItem() {
  if (index >= items.length) {
    return;
  }
  const item = items[index++];
  if (item.type === "node") {
    network.body.data.nodes.add(item.data);
  } else if (item.type === "edge") {
    network.body.data.edges.add(item.data);
  }
  if (delay > 0) {
    setTimeout(addItem, delay);
  } else {
    addItem();
  }
}

addItem();
    </script>
  </body>
</html>`
