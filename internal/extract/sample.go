package extract

// SampleText is the built-in study text about Active Recall. It is used
// when no document is given and when a PDF yields no text.
const SampleText = `
Active Recall es una técnica de estudio que consiste en recuperar información
de la memoria activamente, en lugar de simplemente releer material de estudio.

Esta técnica mejora la retención a largo plazo porque fortalece las conexiones
neuronales y hace que el cerebro trabaje más para recordar la información.

Recuiva implementa Active Recall a través de sesiones de práctica espaciadas
donde el usuario debe recordar conceptos sin mirar las respuestas primero.

La validación semántica permite comparar respuestas del estudiante con el
material original usando embeddings, sin requerir coincidencia exacta de palabras.

Los intervalos de repetición se ajustan automáticamente según el rendimiento
del estudiante en cada sesión de práctica, optimizando la retención.
`
