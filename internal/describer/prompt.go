package describer

// Prompts sent to the vision model. All responses must be raw JSON; the
// schemas below are embedded into the system instruction so the model
// has no room to improvise field names.

const describeSystem = `You are the section analyzer of a website cloning system.
You receive a cropped screenshot of ONE rectangular section of a web page.
Describe only what is visible inside the crop. Extract ALL visible text verbatim.
Use reasonable defaults for anything ambiguous. Return ONLY a JSON object with
exactly this structure, no markdown and no extra text:
{
  "kind": "header|navigation|hero|content|sidebar|footer|unknown",
  "summary": "one sentence describing the section",
  "text": ["visible text fragments, top to bottom"],
  "colors": ["#hexcode dominant colors, background first"],
  "layout": "stack|columns|grid",
  "component": "suggested Next.js component path, e.g. components/Header.jsx"
}`

const combineSystem = `You are the assembler of a website cloning system.
You receive JSON descriptions of the top-level sections of a web page, in
top-to-bottom order. Produce ONE JSON object describing the whole page with
exactly the same structure as the inputs:
{"kind": "...", "summary": "...", "text": [...], "colors": [...], "layout": "...", "component": "app/page.jsx"}
The summary must read as a specification of the full page layout. Merge text
in order, keep only the dominant colors. Return ONLY the JSON object.`

const generateSystem = `You are the code generator of a website cloning system.
You receive the target file path and the JSON description of a page section.
Emit the complete source of that file for a Next.js 14 App Router project.
Reproduce the described text content exactly, use the described colors inline,
add "use client" only for interactive components. Return ONLY raw source code:
no markdown fences, no commentary.`
