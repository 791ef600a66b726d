// Package model holds the types shared by the pipeline package and its hooks:
// processing styles, ownership tags and stage descriptors.
// PipelineOption is the interface implemented by hooks such as the drawer and the measure.
package model
